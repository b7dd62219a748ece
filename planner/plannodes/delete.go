package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * DeletePlanNode deletes the rows of a table that satisfy the predicate;
 * with no predicate every row is deleted.
 */
type DeletePlanNode struct {
	*BasePlanNode
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	predicate   expression.Expression
}

type DeletePlanNodeBuilder struct {
	planNodeBuilder
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	predicate   expression.Expression
}

func NewDeletePlanNodeBuilder() *DeletePlanNodeBuilder {
	return &DeletePlanNodeBuilder{}
}

func (b *DeletePlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *DeletePlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *DeletePlanNodeBuilder) SetTableOID(tableOID types.TableOID) *DeletePlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *DeletePlanNodeBuilder) SetPredicate(predicate expression.Expression) *DeletePlanNodeBuilder {
	b.predicate = predicate
	return b
}

func (b *DeletePlanNodeBuilder) AddChild(child Plan) *DeletePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *DeletePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *DeletePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *DeletePlanNodeBuilder) Build() *DeletePlanNode {
	base := b.buildBase()
	return &DeletePlanNode{&base, b.databaseOID, b.tableOID, b.predicate}
}

func (p *DeletePlanNode) GetPlanNodeType() PlanNodeType { return Delete }

func (p *DeletePlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

func (p *DeletePlanNode) GetTableOID() types.TableOID { return p.tableOID }

/** @return the predicate selecting the rows to delete, may be nil */
func (p *DeletePlanNode) GetPredicate() expression.Expression { return p.predicate }

func (p *DeletePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Delete))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	h = combineExprHash(h, p.predicate)
	return p.combineBaseHash(h)
}

func (p *DeletePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*DeletePlanNode)
	if !ok {
		return false
	}
	if p.databaseOID != other.databaseOID || p.tableOID != other.tableOID {
		return false
	}
	if !exprEquals(p.predicate, other.predicate) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *DeletePlanNode) GetDebugStr() string {
	return fmt.Sprintf("Delete(db:%d tbl:%d)", p.databaseOID, p.tableOID)
}

type deletePlanJSON struct {
	basePlanJSON
	DatabaseOID *types.DatabaseOID `json:"DatabaseOID"`
	TableOID    *types.TableOID    `json:"TableOID"`
	Predicate   json.RawMessage    `json:"Predicate"`
}

func (p *DeletePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Delete)
	if err != nil {
		return nil, err
	}
	predicate, err := marshalExpr(p.predicate)
	if err != nil {
		return nil, err
	}
	databaseOID := p.databaseOID
	tableOID := p.tableOID
	return json.Marshal(&deletePlanJSON{base, &databaseOID, &tableOID, predicate})
}

func (p *DeletePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j deletePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: Delete, Field: "DatabaseOID"}
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: Delete, Field: "TableOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Delete)
	if err != nil {
		return nil, err
	}
	predicate, err := unmarshalExpr(j.Predicate)
	if err != nil {
		return nil, err
	}
	if predicate != nil {
		exprs = append(exprs, predicate)
	}
	p.BasePlanNode = base
	p.databaseOID = *j.DatabaseOID
	p.tableOID = *j.TableOID
	p.predicate = predicate
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * IndexScanPlanNode is used to represent a scan driven by an index,
 * optionally filtered by a predicate evaluated against matching tuples.
 */
type IndexScanPlanNode struct {
	*BasePlanNode
	predicate   expression.Expression
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	indexOID    types.IndexOID
}

type IndexScanPlanNodeBuilder struct {
	planNodeBuilder
	predicate   expression.Expression
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	indexOID    types.IndexOID
}

func NewIndexScanPlanNodeBuilder() *IndexScanPlanNodeBuilder {
	return &IndexScanPlanNodeBuilder{}
}

func (b *IndexScanPlanNodeBuilder) SetPredicate(predicate expression.Expression) *IndexScanPlanNodeBuilder {
	b.predicate = predicate
	return b
}

func (b *IndexScanPlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *IndexScanPlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *IndexScanPlanNodeBuilder) SetTableOID(tableOID types.TableOID) *IndexScanPlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *IndexScanPlanNodeBuilder) SetIndexOID(indexOID types.IndexOID) *IndexScanPlanNodeBuilder {
	b.indexOID = indexOID
	return b
}

func (b *IndexScanPlanNodeBuilder) AddChild(child Plan) *IndexScanPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *IndexScanPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *IndexScanPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *IndexScanPlanNodeBuilder) Build() *IndexScanPlanNode {
	base := b.buildBase()
	return &IndexScanPlanNode{&base, b.predicate, b.databaseOID, b.tableOID, b.indexOID}
}

func (p *IndexScanPlanNode) GetPlanNodeType() PlanNodeType { return IndexScan }

/** @return the predicate to test tuples against, may be nil */
func (p *IndexScanPlanNode) GetPredicate() expression.Expression { return p.predicate }

func (p *IndexScanPlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

func (p *IndexScanPlanNode) GetTableOID() types.TableOID { return p.tableOID }

func (p *IndexScanPlanNode) GetIndexOID() types.IndexOID { return p.indexOID }

func (p *IndexScanPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(IndexScan))
	h = combineExprHash(h, p.predicate)
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.indexOID)))
	return p.combineBaseHash(h)
}

func (p *IndexScanPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*IndexScanPlanNode)
	if !ok {
		return false
	}
	if !exprEquals(p.predicate, other.predicate) {
		return false
	}
	if p.databaseOID != other.databaseOID || p.tableOID != other.tableOID || p.indexOID != other.indexOID {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *IndexScanPlanNode) GetDebugStr() string {
	return fmt.Sprintf("IndexScan(db:%d tbl:%d idx:%d)", p.databaseOID, p.tableOID, p.indexOID)
}

type indexScanPlanJSON struct {
	basePlanJSON
	Predicate   json.RawMessage    `json:"Predicate"`
	DatabaseOID *types.DatabaseOID `json:"DatabaseOID"`
	TableOID    *types.TableOID    `json:"TableOID"`
	IndexOID    *types.IndexOID    `json:"IndexOID"`
}

func (p *IndexScanPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(IndexScan)
	if err != nil {
		return nil, err
	}
	predicate, err := marshalExpr(p.predicate)
	if err != nil {
		return nil, err
	}
	databaseOID := p.databaseOID
	tableOID := p.tableOID
	indexOID := p.indexOID
	return json.Marshal(&indexScanPlanJSON{base, predicate, &databaseOID, &tableOID, &indexOID})
}

func (p *IndexScanPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j indexScanPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: IndexScan, Field: "DatabaseOID"}
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: IndexScan, Field: "TableOID"}
	}
	if j.IndexOID == nil {
		return nil, &DeserializeError{Variant: IndexScan, Field: "IndexOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, IndexScan)
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
	p.predicate = predicate
	p.databaseOID = *j.DatabaseOID
	p.tableOID = *j.TableOID
	p.indexOID = *j.IndexOID
	return exprs, nil
}

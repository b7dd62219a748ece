package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * SetClause assigns the value of an expression to one column of the target
 * table.
 */
type SetClause struct {
	columnOID types.ColumnOID
	value     expression.Expression
}

func NewSetClause(columnOID types.ColumnOID, value expression.Expression) SetClause {
	return SetClause{columnOID, value}
}

func (s SetClause) GetColumnOID() types.ColumnOID { return s.columnOID }

func (s SetClause) GetValue() expression.Expression { return s.value }

/**
 * UpdatePlanNode updates rows of a table that satisfy the predicate,
 * applying its SET clauses in order.
 */
type UpdatePlanNode struct {
	*BasePlanNode
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	setClauses  []SetClause
	predicate   expression.Expression
}

type UpdatePlanNodeBuilder struct {
	planNodeBuilder
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	setClauses  []SetClause
	predicate   expression.Expression
}

func NewUpdatePlanNodeBuilder() *UpdatePlanNodeBuilder {
	return &UpdatePlanNodeBuilder{}
}

func (b *UpdatePlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *UpdatePlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *UpdatePlanNodeBuilder) SetTableOID(tableOID types.TableOID) *UpdatePlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *UpdatePlanNodeBuilder) AddSetClause(columnOID types.ColumnOID, value expression.Expression) *UpdatePlanNodeBuilder {
	b.setClauses = append(b.setClauses, SetClause{columnOID, value})
	return b
}

func (b *UpdatePlanNodeBuilder) SetPredicate(predicate expression.Expression) *UpdatePlanNodeBuilder {
	b.predicate = predicate
	return b
}

func (b *UpdatePlanNodeBuilder) AddChild(child Plan) *UpdatePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *UpdatePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *UpdatePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *UpdatePlanNodeBuilder) Build() *UpdatePlanNode {
	base := b.buildBase()
	setClauses := b.setClauses
	b.setClauses = nil
	return &UpdatePlanNode{&base, b.databaseOID, b.tableOID, setClauses, b.predicate}
}

func (p *UpdatePlanNode) GetPlanNodeType() PlanNodeType { return Update }

func (p *UpdatePlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

func (p *UpdatePlanNode) GetTableOID() types.TableOID { return p.tableOID }

/** @return the SET clauses in application order */
func (p *UpdatePlanNode) GetSetClauses() []SetClause { return p.setClauses }

/** @return the predicate selecting the rows to update, may be nil */
func (p *UpdatePlanNode) GetPredicate() expression.Expression { return p.predicate }

func (p *UpdatePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Update))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(len(p.setClauses))))
	for _, clause := range p.setClauses {
		h = hash.CombineHashes(h, hash.HashUint32(uint32(clause.columnOID)))
		h = combineExprHash(h, clause.value)
	}
	h = combineExprHash(h, p.predicate)
	return p.combineBaseHash(h)
}

func (p *UpdatePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*UpdatePlanNode)
	if !ok {
		return false
	}
	if p.databaseOID != other.databaseOID || p.tableOID != other.tableOID {
		return false
	}
	if len(p.setClauses) != len(other.setClauses) {
		return false
	}
	for i, clause := range p.setClauses {
		if clause.columnOID != other.setClauses[i].columnOID {
			return false
		}
		if !exprEquals(clause.value, other.setClauses[i].value) {
			return false
		}
	}
	if !exprEquals(p.predicate, other.predicate) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *UpdatePlanNode) GetDebugStr() string {
	return fmt.Sprintf("Update(db:%d tbl:%d sets:%d)", p.databaseOID, p.tableOID, len(p.setClauses))
}

type setClauseJSON struct {
	ColumnOID *types.ColumnOID `json:"ColumnOID"`
	Value     json.RawMessage  `json:"Value"`
}

type updatePlanJSON struct {
	basePlanJSON
	DatabaseOID *types.DatabaseOID `json:"DatabaseOID"`
	TableOID    *types.TableOID    `json:"TableOID"`
	SetClauses  []setClauseJSON    `json:"SetClauses"`
	Predicate   json.RawMessage    `json:"Predicate"`
}

func (p *UpdatePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Update)
	if err != nil {
		return nil, err
	}
	setClauses := make([]setClauseJSON, 0, len(p.setClauses))
	for _, clause := range p.setClauses {
		value, err := marshalExpr(clause.value)
		if err != nil {
			return nil, err
		}
		columnOID := clause.columnOID
		setClauses = append(setClauses, setClauseJSON{&columnOID, value})
	}
	predicate, err := marshalExpr(p.predicate)
	if err != nil {
		return nil, err
	}
	databaseOID := p.databaseOID
	tableOID := p.tableOID
	return json.Marshal(&updatePlanJSON{base, &databaseOID, &tableOID, setClauses, predicate})
}

func (p *UpdatePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j updatePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: Update, Field: "DatabaseOID"}
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: Update, Field: "TableOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Update)
	if err != nil {
		return nil, err
	}
	setClauses := make([]SetClause, 0, len(j.SetClauses))
	for _, clauseData := range j.SetClauses {
		if clauseData.ColumnOID == nil {
			return nil, &DeserializeError{Variant: Update, Field: "SetClauses.ColumnOID"}
		}
		value, err := unmarshalExpr(clauseData.Value)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, &DeserializeError{Variant: Update, Field: "SetClauses.Value"}
		}
		setClauses = append(setClauses, SetClause{*clauseData.ColumnOID, value})
		exprs = append(exprs, value)
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
	p.setClauses = setClauses
	p.predicate = predicate
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * SeqScanPlanNode is used to represent a sequential scan over a table,
 * optionally filtered by a predicate.
 */
type SeqScanPlanNode struct {
	*BasePlanNode
	predicate   expression.Expression
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	columnOIDs  []types.ColumnOID
}

type SeqScanPlanNodeBuilder struct {
	planNodeBuilder
	predicate   expression.Expression
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	columnOIDs  []types.ColumnOID
}

func NewSeqScanPlanNodeBuilder() *SeqScanPlanNodeBuilder {
	return &SeqScanPlanNodeBuilder{}
}

func (b *SeqScanPlanNodeBuilder) SetPredicate(predicate expression.Expression) *SeqScanPlanNodeBuilder {
	b.predicate = predicate
	return b
}

func (b *SeqScanPlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *SeqScanPlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *SeqScanPlanNodeBuilder) SetTableOID(tableOID types.TableOID) *SeqScanPlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *SeqScanPlanNodeBuilder) SetColumnOIDs(columnOIDs []types.ColumnOID) *SeqScanPlanNodeBuilder {
	b.columnOIDs = columnOIDs
	return b
}

func (b *SeqScanPlanNodeBuilder) AddChild(child Plan) *SeqScanPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *SeqScanPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *SeqScanPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *SeqScanPlanNodeBuilder) Build() *SeqScanPlanNode {
	base := b.buildBase()
	columnOIDs := b.columnOIDs
	b.columnOIDs = nil
	return &SeqScanPlanNode{&base, b.predicate, b.databaseOID, b.tableOID, columnOIDs}
}

func (p *SeqScanPlanNode) GetPlanNodeType() PlanNodeType { return SeqScan }

/** @return the predicate to test tuples against, may be nil */
func (p *SeqScanPlanNode) GetPredicate() expression.Expression { return p.predicate }

func (p *SeqScanPlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

func (p *SeqScanPlanNode) GetTableOID() types.TableOID { return p.tableOID }

/** @return the OIDs of the columns to scan, in output order */
func (p *SeqScanPlanNode) GetColumnOIDs() []types.ColumnOID { return p.columnOIDs }

func (p *SeqScanPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(SeqScan))
	h = combineExprHash(h, p.predicate)
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	h = combineColumnOIDsHash(h, p.columnOIDs)
	return p.combineBaseHash(h)
}

func (p *SeqScanPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*SeqScanPlanNode)
	if !ok {
		return false
	}
	if !exprEquals(p.predicate, other.predicate) {
		return false
	}
	if p.databaseOID != other.databaseOID || p.tableOID != other.tableOID {
		return false
	}
	if !columnOIDsEqual(p.columnOIDs, other.columnOIDs) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *SeqScanPlanNode) GetDebugStr() string {
	return fmt.Sprintf("SeqScan(db:%d tbl:%d cols:%v)", p.databaseOID, p.tableOID, p.columnOIDs)
}

type seqScanPlanJSON struct {
	basePlanJSON
	Predicate   json.RawMessage    `json:"Predicate"`
	DatabaseOID *types.DatabaseOID `json:"DatabaseOID"`
	TableOID    *types.TableOID    `json:"TableOID"`
	ColumnOIDs  []types.ColumnOID  `json:"ColumnOIDs"`
}

func (p *SeqScanPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(SeqScan)
	if err != nil {
		return nil, err
	}
	predicate, err := marshalExpr(p.predicate)
	if err != nil {
		return nil, err
	}
	databaseOID := p.databaseOID
	tableOID := p.tableOID
	return json.Marshal(&seqScanPlanJSON{base, predicate, &databaseOID, &tableOID, p.columnOIDs})
}

func (p *SeqScanPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j seqScanPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: SeqScan, Field: "DatabaseOID"}
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: SeqScan, Field: "TableOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, SeqScan)
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
	p.columnOIDs = j.ColumnOIDs
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * InsertPlanNode inserts rows into a table. Rows are either literal rows of
 * constant expressions (INSERT ... VALUES) or come from a child plan
 * (INSERT ... SELECT), in which case the rows slice is empty.
 */
type InsertPlanNode struct {
	*BasePlanNode
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	columnOIDs  []types.ColumnOID
	rows        [][]expression.Expression
}

type InsertPlanNodeBuilder struct {
	planNodeBuilder
	databaseOID types.DatabaseOID
	tableOID    types.TableOID
	columnOIDs  []types.ColumnOID
	rows        [][]expression.Expression
}

func NewInsertPlanNodeBuilder() *InsertPlanNodeBuilder {
	return &InsertPlanNodeBuilder{}
}

func (b *InsertPlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *InsertPlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *InsertPlanNodeBuilder) SetTableOID(tableOID types.TableOID) *InsertPlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *InsertPlanNodeBuilder) SetColumnOIDs(columnOIDs []types.ColumnOID) *InsertPlanNodeBuilder {
	b.columnOIDs = columnOIDs
	return b
}

func (b *InsertPlanNodeBuilder) AddRow(row []expression.Expression) *InsertPlanNodeBuilder {
	b.rows = append(b.rows, row)
	return b
}

func (b *InsertPlanNodeBuilder) AddChild(child Plan) *InsertPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *InsertPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *InsertPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *InsertPlanNodeBuilder) Build() *InsertPlanNode {
	base := b.buildBase()
	columnOIDs := b.columnOIDs
	b.columnOIDs = nil
	rows := b.rows
	b.rows = nil
	return &InsertPlanNode{&base, b.databaseOID, b.tableOID, columnOIDs, rows}
}

func (p *InsertPlanNode) GetPlanNodeType() PlanNodeType { return Insert }

func (p *InsertPlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

func (p *InsertPlanNode) GetTableOID() types.TableOID { return p.tableOID }

/** @return the OIDs of the target columns, in row value order */
func (p *InsertPlanNode) GetColumnOIDs() []types.ColumnOID { return p.columnOIDs }

/** @return the literal rows to insert; empty when rows come from a child */
func (p *InsertPlanNode) GetRows() [][]expression.Expression { return p.rows }

func (p *InsertPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Insert))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	h = combineColumnOIDsHash(h, p.columnOIDs)
	h = hash.CombineHashes(h, hash.HashUint32(uint32(len(p.rows))))
	for _, row := range p.rows {
		h = combineExprsHash(h, row)
	}
	return p.combineBaseHash(h)
}

func (p *InsertPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*InsertPlanNode)
	if !ok {
		return false
	}
	if p.databaseOID != other.databaseOID || p.tableOID != other.tableOID {
		return false
	}
	if !columnOIDsEqual(p.columnOIDs, other.columnOIDs) {
		return false
	}
	if len(p.rows) != len(other.rows) {
		return false
	}
	for i, row := range p.rows {
		if !exprsEqual(row, other.rows[i]) {
			return false
		}
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *InsertPlanNode) GetDebugStr() string {
	return fmt.Sprintf("Insert(db:%d tbl:%d rows:%d)", p.databaseOID, p.tableOID, len(p.rows))
}

type insertPlanJSON struct {
	basePlanJSON
	DatabaseOID *types.DatabaseOID  `json:"DatabaseOID"`
	TableOID    *types.TableOID     `json:"TableOID"`
	ColumnOIDs  []types.ColumnOID   `json:"ColumnOIDs"`
	Rows        [][]json.RawMessage `json:"Rows"`
}

func (p *InsertPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Insert)
	if err != nil {
		return nil, err
	}
	rows := make([][]json.RawMessage, 0, len(p.rows))
	for _, row := range p.rows {
		rowData, err := marshalExprs(row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowData)
	}
	databaseOID := p.databaseOID
	tableOID := p.tableOID
	return json.Marshal(&insertPlanJSON{base, &databaseOID, &tableOID, p.columnOIDs, rows})
}

func (p *InsertPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j insertPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: Insert, Field: "DatabaseOID"}
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: Insert, Field: "TableOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Insert)
	if err != nil {
		return nil, err
	}
	rows := make([][]expression.Expression, 0, len(j.Rows))
	for _, rowData := range j.Rows {
		row, err := unmarshalExprs(rowData)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		exprs = append(exprs, row...)
	}
	p.BasePlanNode = base
	p.databaseOID = *j.DatabaseOID
	p.tableOID = *j.TableOID
	p.columnOIDs = j.ColumnOIDs
	p.rows = rows
	return exprs, nil
}

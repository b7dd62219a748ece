package expression

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * ColumnValue maintains the tuple index and column index relative to a
 * particular schema or join.
 * Tuple index 0 = left side of join, tuple index 1 = right side of join.
 * Column index refers to the index within the schema of the tuple,
 * e.g. schema {A,B,C} has indexes {0,1,2}.
 */
type ColumnValue struct {
	tupleIndex uint32
	colIndex   uint32
	retType    types.TypeID
}

func NewColumnValue(tupleIndex uint32, colIndex uint32, colType types.TypeID) Expression {
	return &ColumnValue{tupleIndex, colIndex, colType}
}

func (c *ColumnValue) GetExpressionType() ExpressionType { return ColumnValueExpression }

func (c *ColumnValue) GetReturnType() types.TypeID { return c.retType }

func (c *ColumnValue) GetChildAt(childIdx uint32) Expression { return nil }

func (c *ColumnValue) GetTupleIndex() uint32 { return c.tupleIndex }

func (c *ColumnValue) GetColIndex() uint32 { return c.colIndex }

func (c *ColumnValue) Hash() uint32 {
	h := hash.HashUint32(uint32(ColumnValueExpression))
	h = hash.CombineHashes(h, hash.HashUint32(c.tupleIndex))
	h = hash.CombineHashes(h, hash.HashUint32(c.colIndex))
	return hash.CombineHashes(h, hash.HashUint32(uint32(c.retType)))
}

func (c *ColumnValue) Equals(rhs Expression) bool {
	other, ok := rhs.(*ColumnValue)
	if !ok {
		return false
	}
	return c.tupleIndex == other.tupleIndex && c.colIndex == other.colIndex && c.retType == other.retType
}

type columnValueJSON struct {
	ExpressionType ExpressionType `json:"ExpressionType"`
	TupleIndex     uint32         `json:"TupleIndex"`
	ColIndex       uint32         `json:"ColIndex"`
	ReturnType     types.TypeID   `json:"ReturnType"`
}

func (c *ColumnValue) ToJSON() (json.RawMessage, error) {
	return json.Marshal(&columnValueJSON{ColumnValueExpression, c.tupleIndex, c.colIndex, c.retType})
}

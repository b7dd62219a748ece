package expression

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/types"
)

type ConstantValue struct {
	value types.Value
}

func NewConstantValue(value types.Value) Expression {
	return &ConstantValue{value}
}

func (c *ConstantValue) GetExpressionType() ExpressionType { return ConstantValueExpression }

func (c *ConstantValue) GetReturnType() types.TypeID { return c.value.ValueType() }

func (c *ConstantValue) GetChildAt(childIdx uint32) Expression { return nil }

func (c *ConstantValue) GetValue() types.Value { return c.value }

func (c *ConstantValue) Hash() uint32 {
	h := hash.HashUint32(uint32(ConstantValueExpression))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(c.value.ValueType())))
	return hash.CombineHashes(h, hash.GenHashMurMur(c.value.Serialize()))
}

func (c *ConstantValue) Equals(rhs Expression) bool {
	other, ok := rhs.(*ConstantValue)
	if !ok {
		return false
	}
	return c.value.CompareEquals(other.value)
}

type constantValueJSON struct {
	ExpressionType ExpressionType `json:"ExpressionType"`
	Value          types.Value    `json:"Value"`
}

func (c *ConstantValue) ToJSON() (json.RawMessage, error) {
	return json.Marshal(&constantValueJSON{ConstantValueExpression, c.value})
}

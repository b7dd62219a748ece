package expression

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/types"
)

type ComparisonType int32

/** ComparisonType represents the type of comparison that we want to perform. */
const (
	Equal ComparisonType = iota
	NotEqual
	LessThan
	GreaterThan
)

/**
 * Comparison represents two expressions being compared.
 */
type Comparison struct {
	comparisonType ComparisonType
	left           Expression
	right          Expression
}

func NewComparison(left Expression, right Expression, comparisonType ComparisonType) Expression {
	return &Comparison{comparisonType, left, right}
}

func (c *Comparison) GetExpressionType() ExpressionType { return ComparisonExpression }

func (c *Comparison) GetReturnType() types.TypeID { return types.Boolean }

func (c *Comparison) GetChildAt(childIdx uint32) Expression {
	if childIdx == 0 {
		return c.left
	}
	return c.right
}

func (c *Comparison) GetComparisonType() ComparisonType { return c.comparisonType }

func (c *Comparison) Hash() uint32 {
	h := hash.HashUint32(uint32(ComparisonExpression))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(c.comparisonType)))
	h = hash.CombineHashes(h, c.left.Hash())
	return hash.CombineHashes(h, c.right.Hash())
}

func (c *Comparison) Equals(rhs Expression) bool {
	other, ok := rhs.(*Comparison)
	if !ok {
		return false
	}
	if c.comparisonType != other.comparisonType {
		return false
	}
	return c.left.Equals(other.left) && c.right.Equals(other.right)
}

type comparisonJSON struct {
	ExpressionType ExpressionType  `json:"ExpressionType"`
	ComparisonType ComparisonType  `json:"ComparisonType"`
	Left           json.RawMessage `json:"Left"`
	Right          json.RawMessage `json:"Right"`
}

func (c *Comparison) ToJSON() (json.RawMessage, error) {
	left, err := c.left.ToJSON()
	if err != nil {
		return nil, err
	}
	right, err := c.right.ToJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&comparisonJSON{ComparisonExpression, c.comparisonType, left, right})
}

package expression

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/types"
)

/**
 * Expression interface is the base of all the expressions embeddable in plan
 * nodes. Expressions are modeled as trees, i.e. every expression may have a
 * variable number of children. The order of appearance of children matters.
 */
type Expression interface {
	GetExpressionType() ExpressionType
	GetReturnType() types.TypeID
	GetChildAt(childIdx uint32) Expression
	// Hash is a value hash: two independently built expressions with the
	// same fields and children hash identically.
	Hash() uint32
	// Equals is structural equality over type, fields and child trees.
	Equals(rhs Expression) bool
	ToJSON() (json.RawMessage, error)
}

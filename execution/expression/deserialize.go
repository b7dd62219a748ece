package expression

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/errors"
)

const ErrMissingExpressionType = errors.Error("expression document is missing the ExpressionType tag")

// DeserializeExpression reconstructs an expression tree from a document
// produced by ToJSON. The returned expression is owned by the caller.
func DeserializeExpression(data json.RawMessage) (Expression, error) {
	var probe struct {
		ExpressionType ExpressionType `json:"ExpressionType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.ExpressionType {
	case ConstantValueExpression:
		var j constantValueJSON
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		return NewConstantValue(j.Value), nil
	case ColumnValueExpression:
		var j columnValueJSON
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		return NewColumnValue(j.TupleIndex, j.ColIndex, j.ReturnType), nil
	case ComparisonExpression:
		var j comparisonJSON
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		if j.Left == nil {
			return nil, fmt.Errorf("comparison expression document is missing the Left child")
		}
		if j.Right == nil {
			return nil, fmt.Errorf("comparison expression document is missing the Right child")
		}
		left, err := DeserializeExpression(j.Left)
		if err != nil {
			return nil, err
		}
		right, err := DeserializeExpression(j.Right)
		if err != nil {
			return nil, err
		}
		return NewComparison(left, right, j.ComparisonType), nil
	case InvalidExpression:
		return nil, ErrMissingExpressionType
	}
	return nil, fmt.Errorf("unknown expression type tag %d", probe.ExpressionType)
}

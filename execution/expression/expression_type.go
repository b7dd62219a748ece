package expression

import (
	"encoding/json"
	"fmt"
)

type ExpressionType int32

const (
	InvalidExpression ExpressionType = iota
	ConstantValueExpression
	ColumnValueExpression
	ComparisonExpression
)

var expressionTypeNames = [...]string{
	InvalidExpression:       "Invalid",
	ConstantValueExpression: "ConstantValue",
	ColumnValueExpression:   "ColumnValue",
	ComparisonExpression:    "Comparison",
}

func (t ExpressionType) String() string {
	if int(t) < len(expressionTypeNames) {
		return expressionTypeNames[t]
	}
	return fmt.Sprintf("ExpressionType(%d)", int32(t))
}

var expressionTypeFromName = map[string]ExpressionType{}

func init() {
	for t, name := range expressionTypeNames {
		expressionTypeFromName[name] = ExpressionType(t)
	}
}

// serialized as the type name so that reordering the enum does not break
// persisted documents
func (t ExpressionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ExpressionType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := expressionTypeFromName[name]
	if !ok {
		return fmt.Errorf("unknown expression type %q", name)
	}
	*t = parsed
	return nil
}

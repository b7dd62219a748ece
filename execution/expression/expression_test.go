package expression

import (
	"testing"

	testingpkg "github.com/kagerodb/KageroDB/testing/testing_assert"
	"github.com/kagerodb/KageroDB/types"
)

func TestExpressionEquality(t *testing.T) {
	cmp1 := NewComparison(
		NewColumnValue(0, 1, types.Integer),
		NewConstantValue(types.NewInteger(42)),
		Equal)
	cmp2 := NewComparison(
		NewColumnValue(0, 1, types.Integer),
		NewConstantValue(types.NewInteger(42)),
		Equal)
	cmp3 := NewComparison(
		NewColumnValue(0, 1, types.Integer),
		NewConstantValue(types.NewInteger(43)),
		Equal)
	cmp4 := NewComparison(
		NewColumnValue(0, 1, types.Integer),
		NewConstantValue(types.NewInteger(42)),
		NotEqual)

	testingpkg.SimpleAssert(t, cmp1.Equals(cmp2))
	testingpkg.Equals(t, cmp1.Hash(), cmp2.Hash())
	testingpkg.SimpleAssert(t, !cmp1.Equals(cmp3))
	testingpkg.SimpleAssert(t, !cmp1.Equals(cmp4))
}

func TestExpressionTypeDiscrimination(t *testing.T) {
	constant := NewConstantValue(types.NewInteger(1))
	column := NewColumnValue(0, 0, types.Integer)

	testingpkg.SimpleAssert(t, !constant.Equals(column))
	testingpkg.SimpleAssert(t, !column.Equals(constant))
}

func TestConstantValueKinds(t *testing.T) {
	intVal := NewConstantValue(types.NewInteger(7))
	strVal := NewConstantValue(types.NewVarchar("7"))
	boolVal := NewConstantValue(types.NewBoolean(true))

	testingpkg.Equals(t, types.Integer, intVal.GetReturnType())
	testingpkg.Equals(t, types.Varchar, strVal.GetReturnType())
	testingpkg.Equals(t, types.Boolean, boolVal.GetReturnType())
	testingpkg.SimpleAssert(t, !intVal.Equals(strVal))
}

func TestExpressionRoundTrip(t *testing.T) {
	original := NewComparison(
		NewColumnValue(1, 3, types.Varchar),
		NewConstantValue(types.NewVarchar("tokyo")),
		NotEqual)

	data, err := original.ToJSON()
	testingpkg.Ok(t, err)

	loaded, err := DeserializeExpression(data)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, loaded.Equals(original))
	testingpkg.Equals(t, original.Hash(), loaded.Hash())

	loadedCmp := loaded.(*Comparison)
	testingpkg.Equals(t, NotEqual, loadedCmp.GetComparisonType())
	testingpkg.Equals(t, uint32(3), loadedCmp.GetChildAt(0).(*ColumnValue).GetColIndex())
}

func TestDeserializeExpressionErrors(t *testing.T) {
	_, err := DeserializeExpression([]byte(`{}`))
	testingpkg.Equals(t, ErrMissingExpressionType, err)

	_, err = DeserializeExpression([]byte(`{"ExpressionType":"Comparison","ComparisonType":0,"Right":{"ExpressionType":"ColumnValue"}}`))
	testingpkg.SimpleAssert(t, err != nil)
}

package plannodes

import (
	"strings"
	"testing"

	"github.com/kagerodb/KageroDB/execution/expression"
	testingpkg "github.com/kagerodb/KageroDB/testing/testing_assert"
	"github.com/kagerodb/KageroDB/types"
)

func TestAnalyzeRoundTrip(t *testing.T) {
	node := NewAnalyzePlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetNamespaceOID(types.NamespaceOID(2)).
		SetTableOID(types.TableOID(3)).
		SetColumnOIDs([]types.ColumnOID{10, 11}).
		Build()

	data, err := node.ToJSON()
	testingpkg.Ok(t, err)

	loaded, exprs, err := DeserializePlanNode(data)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(exprs))
	testingpkg.SimpleAssert(t, loaded.Equals(node))
	testingpkg.Equals(t, []types.ColumnOID{10, 11}, loaded.(*AnalyzePlanNode).GetColumnOIDs())
}

func TestSeqScanRoundTripWithPredicate(t *testing.T) {
	node := buildSampleSeqScan()

	data, err := node.ToJSON()
	testingpkg.Ok(t, err)

	loaded, exprs, err := DeserializePlanNode(data)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, loaded.Equals(node))
	testingpkg.Equals(t, node.Hash(), loaded.Hash())

	// the reconstructed predicate is handed back to the caller and the node
	// aliases the same object
	testingpkg.Equals(t, 1, len(exprs))
	testingpkg.SimpleAssert(t, exprs[0] == loaded.(*SeqScanPlanNode).GetPredicate())
	testingpkg.SimpleAssert(t, exprs[0].Equals(node.GetPredicate()))
}

func TestHashJoinTreeRoundTrip(t *testing.T) {
	left := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	right := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(200).Build()
	join := NewHashJoinPlanNodeBuilder().
		SetLeftHashKeys([]expression.Expression{expression.NewColumnValue(0, 0, types.Integer)}).
		SetRightHashKeys([]expression.Expression{expression.NewColumnValue(1, 2, types.Integer)}).
		AddChild(left).
		AddChild(right).
		SetOutputSchema(NewOutputSchema([]*Column{NewColumn("k", types.Integer)})).
		Build()

	data, err := join.ToJSON()
	testingpkg.Ok(t, err)

	loaded, exprs, err := DeserializePlanNode(data)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, loaded.Equals(join))
	testingpkg.Equals(t, join.Hash(), loaded.Hash())
	testingpkg.Equals(t, 2, len(exprs))
	testingpkg.Equals(t, 2, len(loaded.GetChildren()))
}

func TestDMLRoundTrip(t *testing.T) {
	insert := NewInsertPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(3)).
		SetColumnOIDs([]types.ColumnOID{10, 11}).
		AddRow([]expression.Expression{
			expression.NewConstantValue(types.NewInteger(7)),
			expression.NewConstantValue(types.NewVarchar("x")),
		}).
		Build()
	update := NewUpdatePlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(3)).
		AddSetClause(types.ColumnOID(10), expression.NewConstantValue(types.NewInteger(0))).
		SetPredicate(expression.NewComparison(
			expression.NewColumnValue(0, 0, types.Integer),
			expression.NewConstantValue(types.NewInteger(5)),
			expression.NotEqual)).
		Build()
	del := NewDeletePlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(3)).
		Build()

	for _, node := range []Plan{insert, update, del} {
		data, err := node.ToJSON()
		testingpkg.Ok(t, err)
		loaded, _, err := DeserializePlanNode(data)
		testingpkg.Ok(t, err)
		testingpkg.SimpleAssert(t, loaded.Equals(node))
		testingpkg.Equals(t, node.Hash(), loaded.Hash())
	}
}

func TestShapingRoundTrip(t *testing.T) {
	child := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(3).Build()
	agg := NewAggregatePlanNodeBuilder().
		SetGroupBys([]expression.Expression{expression.NewColumnValue(0, 0, types.Integer)}).
		AddAggregate(expression.NewColumnValue(0, 1, types.Integer), SUM_AGGREGATE).
		AddChild(child).
		Build()
	orderBy := NewOrderByPlanNodeBuilder().
		AddSortKey(0, ASC).
		AddSortKey(1, DESC).
		Build()
	projection := NewProjectionPlanNodeBuilder().
		SetExpressions([]expression.Expression{expression.NewColumnValue(0, 0, types.Integer)}).
		Build()
	createNamespace := NewCreateNamespacePlanNodeBuilder().
		SetNamespaceName("analytics").
		Build()
	indexScan := NewIndexScanPlanNodeBuilder().
		SetDatabaseOID(1).
		SetTableOID(3).
		SetIndexOID(9).
		Build()

	for _, node := range []Plan{agg, orderBy, projection, createNamespace, indexScan} {
		data, err := node.ToJSON()
		testingpkg.Ok(t, err)
		loaded, _, err := DeserializePlanNode(data)
		testingpkg.Ok(t, err)
		testingpkg.SimpleAssert(t, loaded.Equals(node))
		testingpkg.Equals(t, node.Hash(), loaded.Hash())
	}
}

func TestMissingRequiredField(t *testing.T) {
	doc := []byte(`{"PlanNodeType":"DropNamespace","OutputSchema":null,"Children":[]}`)

	_, _, err := DeserializePlanNode(doc)
	testingpkg.SimpleAssert(t, err != nil)
	deserErr, ok := err.(*DeserializeError)
	testingpkg.SimpleAssert(t, ok)
	testingpkg.Equals(t, DropNamespace, deserErr.Variant)
	testingpkg.Equals(t, "NamespaceOID", deserErr.Field)
	testingpkg.SimpleAssert(t, strings.Contains(err.Error(), "NamespaceOID"))
}

func TestMissingTypeTag(t *testing.T) {
	_, _, err := DeserializePlanNode([]byte(`{}`))
	testingpkg.SimpleAssert(t, err != nil)
	deserErr, ok := err.(*DeserializeError)
	testingpkg.SimpleAssert(t, ok)
	testingpkg.Equals(t, "PlanNodeType", deserErr.Field)
}

func TestUnknownTypeTag(t *testing.T) {
	_, _, err := DeserializePlanNode([]byte(`{"PlanNodeType":"Teleport"}`))
	testingpkg.SimpleAssert(t, err != nil)
	testingpkg.SimpleAssert(t, strings.Contains(err.Error(), "Teleport"))
}

func TestTypeTagMismatch(t *testing.T) {
	node := NewDropNamespacePlanNodeBuilder().SetNamespaceOID(types.NamespaceOID(5)).Build()
	data, err := node.ToJSON()
	testingpkg.Ok(t, err)

	_, err = (&DropTablePlanNode{}).FromJSON(data)
	testingpkg.SimpleAssert(t, err != nil)
}

func TestMalformedChild(t *testing.T) {
	doc := []byte(`{"PlanNodeType":"Result","OutputSchema":null,"Children":[{"PlanNodeType":"DropTable"}]}`)

	_, _, err := DeserializePlanNode(doc)
	testingpkg.SimpleAssert(t, err != nil)
	deserErr, ok := err.(*DeserializeError)
	testingpkg.SimpleAssert(t, ok)
	testingpkg.Equals(t, DropTable, deserErr.Variant)
	testingpkg.Equals(t, "TableOID", deserErr.Field)
}

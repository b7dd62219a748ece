package plannodes

import (
	"testing"

	"github.com/kagerodb/KageroDB/execution/expression"
	testingpkg "github.com/kagerodb/KageroDB/testing/testing_assert"
	"github.com/kagerodb/KageroDB/types"
)

func TestAnalyzePlanNode(t *testing.T) {
	node := NewAnalyzePlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetNamespaceOID(types.NamespaceOID(2)).
		SetTableOID(types.TableOID(3)).
		SetColumnOIDs([]types.ColumnOID{10, 11}).
		Build()

	testingpkg.Equals(t, Analyze, node.GetPlanNodeType())
	testingpkg.Equals(t, types.DatabaseOID(1), node.GetDatabaseOID())
	testingpkg.Equals(t, types.NamespaceOID(2), node.GetNamespaceOID())
	testingpkg.Equals(t, types.TableOID(3), node.GetTableOID())
	testingpkg.Equals(t, []types.ColumnOID{10, 11}, node.GetColumnOIDs())
	testingpkg.SimpleAssert(t, node.OutputSchema() == nil)
	testingpkg.Equals(t, 0, len(node.GetChildren()))
}

func TestDropNamespacePlanNodeEquality(t *testing.T) {
	node1 := NewDropNamespacePlanNodeBuilder().SetNamespaceOID(types.NamespaceOID(5)).Build()
	node2 := NewDropNamespacePlanNodeBuilder().SetNamespaceOID(types.NamespaceOID(5)).Build()

	testingpkg.SimpleAssert(t, node1.Equals(node2))
	testingpkg.SimpleAssert(t, node2.Equals(node1))
	testingpkg.Equals(t, node1.Hash(), node2.Hash())

	node3 := NewDropNamespacePlanNodeBuilder().SetNamespaceOID(types.NamespaceOID(6)).Build()
	testingpkg.SimpleAssert(t, !node1.Equals(node3))
}

func TestTypeDiscrimination(t *testing.T) {
	dropNamespace := NewDropNamespacePlanNodeBuilder().SetNamespaceOID(types.NamespaceOID(5)).Build()
	dropDatabase := NewDropDatabasePlanNodeBuilder().SetDatabaseOID(types.DatabaseOID(5)).Build()
	dropTable := NewDropTablePlanNodeBuilder().SetTableOID(types.TableOID(5)).Build()

	testingpkg.SimpleAssert(t, !dropNamespace.Equals(dropDatabase))
	testingpkg.SimpleAssert(t, !dropDatabase.Equals(dropTable))
	testingpkg.SimpleAssert(t, !dropTable.Equals(dropNamespace))
}

func buildSampleSeqScan() *SeqScanPlanNode {
	predicate := expression.NewComparison(
		expression.NewColumnValue(0, 1, types.Integer),
		expression.NewConstantValue(types.NewInteger(42)),
		expression.Equal)
	return NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(7)).
		SetColumnOIDs([]types.ColumnOID{20, 21, 22}).
		SetPredicate(predicate).
		SetOutputSchema(NewOutputSchema([]*Column{
			NewColumn("a", types.Integer),
			NewColumn("b", types.Varchar),
		})).
		Build()
}

func TestBuildDeterminism(t *testing.T) {
	node1 := buildSampleSeqScan()
	node2 := buildSampleSeqScan()

	testingpkg.SimpleAssert(t, node1.Equals(node2))
	testingpkg.Equals(t, node1.Hash(), node2.Hash())
}

func TestFieldSensitivity(t *testing.T) {
	node1 := buildSampleSeqScan()

	node2 := NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(8)).
		SetColumnOIDs([]types.ColumnOID{20, 21, 22}).
		Build()
	testingpkg.SimpleAssert(t, !node1.Equals(node2))

	// same fields but different column order
	node3 := NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(7)).
		SetColumnOIDs([]types.ColumnOID{21, 20, 22}).
		Build()
	node4 := NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(7)).
		SetColumnOIDs([]types.ColumnOID{20, 21, 22}).
		Build()
	testingpkg.SimpleAssert(t, !node3.Equals(node4))
}

func TestOutputSchemaEquality(t *testing.T) {
	schema1 := NewOutputSchema([]*Column{NewColumn("a", types.Integer)})
	schema2 := NewOutputSchema([]*Column{NewColumn("a", types.Integer)})
	schema3 := NewOutputSchema([]*Column{NewColumn("a", types.Varchar)})

	testingpkg.SimpleAssert(t, schema1.Equals(schema2))
	testingpkg.Equals(t, schema1.Hash(), schema2.Hash())
	testingpkg.SimpleAssert(t, !schema1.Equals(schema3))

	withSchema := NewResultPlanNodeBuilder().SetOutputSchema(schema1).Build()
	withoutSchema := NewResultPlanNodeBuilder().Build()
	testingpkg.SimpleAssert(t, !withSchema.Equals(withoutSchema))
	testingpkg.SimpleAssert(t, !withoutSchema.Equals(withSchema))
}

func TestBuilderSingleUse(t *testing.T) {
	builder := NewDropNamespacePlanNodeBuilder().SetNamespaceOID(types.NamespaceOID(5))
	node := builder.Build()

	// mutating the builder afterwards must not alter the built node
	builder.SetNamespaceOID(types.NamespaceOID(9))
	builder.AddChild(NewResultPlanNodeBuilder().Build())
	testingpkg.Equals(t, types.NamespaceOID(5), node.GetNamespaceOID())
	testingpkg.Equals(t, 0, len(node.GetChildren()))

	defer func() {
		testingpkg.SimpleAssert(t, recover() != nil)
	}()
	builder.Build()
}

func TestBuilderChildBuffersNotAliased(t *testing.T) {
	child := NewResultPlanNodeBuilder().Build()
	builder := NewLimitPlanNodeBuilder().SetLimit(10).SetOffset(2).AddChild(child)
	node := builder.Build()

	testingpkg.Equals(t, 1, len(node.GetChildren()))
	testingpkg.Equals(t, uint64(10), node.GetLimit())
	testingpkg.Equals(t, uint64(2), node.GetOffset())
	testingpkg.SimpleAssert(t, node.GetChildAt(0) == Plan(child))
}

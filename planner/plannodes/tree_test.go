package plannodes

import (
	"strings"
	"testing"

	testingpkg "github.com/kagerodb/KageroDB/testing/testing_assert"
	"github.com/kagerodb/KageroDB/types"
)

func buildThreeLevelTree() *NestedLoopJoinPlanNode {
	grandchild := NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(100)).
		Build()
	child1 := NewLimitPlanNodeBuilder().
		SetLimit(10).
		AddChild(grandchild).
		Build()
	child2 := NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(200)).
		Build()
	return NewNestedLoopJoinPlanNodeBuilder().
		AddChild(child1).
		AddChild(child2).
		Build()
}

func TestTreeHashSensitiveToChildOrder(t *testing.T) {
	grandchild1 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	child1 := NewLimitPlanNodeBuilder().SetLimit(10).AddChild(grandchild1).Build()
	child2 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(200).Build()
	tree := NewNestedLoopJoinPlanNodeBuilder().AddChild(child1).AddChild(child2).Build()

	grandchild2 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	child3 := NewLimitPlanNodeBuilder().SetLimit(10).AddChild(grandchild2).Build()
	child4 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(200).Build()
	swapped := NewNestedLoopJoinPlanNodeBuilder().AddChild(child4).AddChild(child3).Build()

	testingpkg.SimpleAssert(t, !tree.Equals(swapped))
	testingpkg.SimpleAssert(t, tree.Hash() != swapped.Hash())

	// an independently built tree with the same child order matches
	grandchild3 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	child5 := NewLimitPlanNodeBuilder().SetLimit(10).AddChild(grandchild3).Build()
	child6 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(200).Build()
	same := NewNestedLoopJoinPlanNodeBuilder().AddChild(child5).AddChild(child6).Build()

	testingpkg.SimpleAssert(t, tree.Equals(same))
	testingpkg.Equals(t, tree.Hash(), same.Hash())
}

func TestTreeChildCountMatters(t *testing.T) {
	child1 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	oneChild := NewResultPlanNodeBuilder().AddChild(child1).Build()

	child2 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	child3 := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	twoChildren := NewResultPlanNodeBuilder().AddChild(child2).AddChild(child3).Build()

	noChildren := NewResultPlanNodeBuilder().Build()

	testingpkg.SimpleAssert(t, !oneChild.Equals(twoChildren))
	testingpkg.SimpleAssert(t, !oneChild.Equals(noChildren))
}

func TestJoinChildAccessors(t *testing.T) {
	left := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	right := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(200).Build()
	join := NewHashJoinPlanNodeBuilder().AddChild(left).AddChild(right).Build()

	testingpkg.SimpleAssert(t, join.GetLeftPlan() == Plan(left))
	testingpkg.SimpleAssert(t, join.GetRightPlan() == Plan(right))
}

func TestValidatePlanTree(t *testing.T) {
	proper := buildThreeLevelTree()
	testingpkg.Ok(t, ValidatePlanTree(proper))

	shared := NewSeqScanPlanNodeBuilder().SetDatabaseOID(1).SetTableOID(100).Build()
	broken := NewNestedLoopJoinPlanNodeBuilder().AddChild(shared).AddChild(shared).Build()
	testingpkg.Equals(t, ErrNotATree, ValidatePlanTree(broken))
}

func TestSprintPlanTree(t *testing.T) {
	tree := buildThreeLevelTree()
	rendered := SprintPlanTree(tree, 0)

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	testingpkg.Equals(t, 4, len(lines))
	testingpkg.SimpleAssert(t, strings.HasPrefix(lines[0], "NestedLoopJoin"))
	testingpkg.SimpleAssert(t, strings.HasPrefix(lines[1], "  Limit"))
	testingpkg.SimpleAssert(t, strings.HasPrefix(lines[2], "    SeqScan"))
	testingpkg.SimpleAssert(t, strings.HasPrefix(lines[3], "  SeqScan"))
}

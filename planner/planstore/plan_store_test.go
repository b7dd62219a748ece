package planstore

import (
	"testing"

	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/planner/plannodes"
	testingpkg "github.com/kagerodb/KageroDB/testing/testing_assert"
	"github.com/kagerodb/KageroDB/types"
)

func TestVirtualPlanStoreRoundTrip(t *testing.T) {
	store := NewVirtualPlanStore()
	defer store.ShutDown()

	analyze := plannodes.NewAnalyzePlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetNamespaceOID(types.NamespaceOID(2)).
		SetTableOID(types.TableOID(3)).
		SetColumnOIDs([]types.ColumnOID{10, 11}).
		Build()
	dropNamespace := plannodes.NewDropNamespacePlanNodeBuilder().
		SetNamespaceOID(types.NamespaceOID(5)).
		Build()

	testingpkg.Ok(t, store.Append(analyze))
	testingpkg.Ok(t, store.Append(dropNamespace))
	testingpkg.Equals(t, uint64(2), store.GetNumWrites())

	plans, exprs, err := store.LoadAll()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 2, len(plans))
	testingpkg.Equals(t, 0, len(exprs))
	testingpkg.SimpleAssert(t, plans[0].Equals(analyze))
	testingpkg.SimpleAssert(t, plans[1].Equals(dropNamespace))
}

func TestPlanStoreHandsBackExpressions(t *testing.T) {
	store := NewVirtualPlanStore()
	defer store.ShutDown()

	scan := plannodes.NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(types.TableOID(3)).
		SetPredicate(expression.NewComparison(
			expression.NewColumnValue(0, 0, types.Integer),
			expression.NewConstantValue(types.NewInteger(9)),
			expression.Equal)).
		Build()
	testingpkg.Ok(t, store.Append(scan))

	plans, exprs, err := store.LoadAll()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(plans))
	testingpkg.Equals(t, 1, len(exprs))
	testingpkg.SimpleAssert(t, plans[0].Equals(scan))
	testingpkg.SimpleAssert(t, exprs[0] == plans[0].(*plannodes.SeqScanPlanNode).GetPredicate())
}

func TestEmptyStore(t *testing.T) {
	store := NewVirtualPlanStore()
	defer store.ShutDown()

	plans, exprs, err := store.LoadAll()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(plans))
	testingpkg.Equals(t, 0, len(exprs))
}

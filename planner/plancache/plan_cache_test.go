package plancache

import (
	"testing"

	"github.com/kagerodb/KageroDB/planner/plannodes"
	testingpkg "github.com/kagerodb/KageroDB/testing/testing_assert"
	"github.com/kagerodb/KageroDB/types"
)

func buildScan(tableOID types.TableOID) plannodes.Plan {
	return plannodes.NewSeqScanPlanNodeBuilder().
		SetDatabaseOID(types.DatabaseOID(1)).
		SetTableOID(tableOID).
		SetColumnOIDs([]types.ColumnOID{10, 11}).
		Build()
}

func TestPlanCacheSharesStructurallyEqualPlans(t *testing.T) {
	cache := NewPlanCache()

	original := buildScan(3)
	admitted := cache.Put(original)
	testingpkg.SimpleAssert(t, admitted == original)
	testingpkg.Equals(t, 1, cache.Len())

	// an independently built, structurally equal plan resolves to the
	// cached instance
	duplicate := buildScan(3)
	cached, found := cache.Get(duplicate)
	testingpkg.SimpleAssert(t, found)
	testingpkg.SimpleAssert(t, cached == original)

	// Put of a structural duplicate does not grow the cache
	admitted = cache.Put(buildScan(3))
	testingpkg.SimpleAssert(t, admitted == original)
	testingpkg.Equals(t, 1, cache.Len())
}

func TestPlanCacheMiss(t *testing.T) {
	cache := NewPlanCache()
	cache.Put(buildScan(3))

	_, found := cache.Get(buildScan(4))
	testingpkg.SimpleAssert(t, !found)
}

func TestPlanCacheEvictsLeastHit(t *testing.T) {
	cache := NewPlanCacheWithCapacity(2)

	hot := cache.Put(buildScan(1))
	cache.Put(buildScan(2))
	for i := 0; i < 3; i++ {
		cache.Get(buildScan(1))
	}

	// admitting a third plan evicts the never-hit scan of table 2
	cache.Put(buildScan(3))
	testingpkg.Equals(t, 2, cache.Len())

	stillThere, found := cache.Get(buildScan(1))
	testingpkg.SimpleAssert(t, found)
	testingpkg.SimpleAssert(t, stillThere == hot)

	_, found = cache.Get(buildScan(2))
	testingpkg.SimpleAssert(t, !found)
}

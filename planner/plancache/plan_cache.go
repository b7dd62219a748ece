package plancache

import (
	pair "github.com/notEpsilon/go-pair"
	"github.com/sasha-s/go-deadlock"

	"github.com/kagerodb/KageroDB/common"
	"github.com/kagerodb/KageroDB/planner/plannodes"
)

/**
 * PlanCache is keyed by plan Hash with structural equality resolving
 * collisions within a bucket. Because built plans are immutable, the cached
 * instance can be handed out to any number of concurrent executions.
 *
 * Bucket entries pair the cached plan with its hit count; when the cache is
 * full the entry with the fewest hits is evicted.
 */
type PlanCache struct {
	mutex    deadlock.RWMutex
	buckets  map[uint32][]*pair.Pair[plannodes.Plan, uint64]
	numPlans uint32
	capacity uint32
}

func NewPlanCache() *PlanCache {
	return NewPlanCacheWithCapacity(common.PlanCacheCapacity)
}

func NewPlanCacheWithCapacity(capacity uint32) *PlanCache {
	common.KDB_Assert(capacity > 0, "plan cache capacity must be positive")
	return &PlanCache{
		buckets:  make(map[uint32][]*pair.Pair[plannodes.Plan, uint64]),
		capacity: capacity,
	}
}

// Get returns the cached plan structurally equal to key, if any, and bumps
// its hit count.
func (c *PlanCache) Get(key plannodes.Plan) (plannodes.Plan, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, entry := range c.buckets[key.Hash()] {
		if entry.First.Equals(key) {
			entry.Second++
			return entry.First, true
		}
	}
	return nil, false
}

// Put admits plan and returns the instance the cache now holds: the already
// cached structurally equal plan if there is one, otherwise plan itself.
func (c *PlanCache) Put(plan plannodes.Plan) plannodes.Plan {
	if common.EnablePlanTreeCheck {
		if err := plannodes.ValidatePlanTree(plan); err != nil {
			panic(err.Error())
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	h := plan.Hash()
	for _, entry := range c.buckets[h] {
		if entry.First.Equals(plan) {
			entry.Second++
			return entry.First
		}
	}
	if c.numPlans >= c.capacity {
		c.evictLeastHit()
	}
	c.buckets[h] = append(c.buckets[h], &pair.Pair[plannodes.Plan, uint64]{First: plan})
	c.numPlans++
	common.KdbPrintf(common.CACHE_OP, "plan cache: admitted %s (hash %d)\n", plan.GetDebugStr(), h)
	return plan
}

func (c *PlanCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return int(c.numPlans)
}

// caller must hold mutex
func (c *PlanCache) evictLeastHit() {
	var victimHash uint32
	victimIdx := -1
	var victimHits uint64
	for h, entries := range c.buckets {
		for i, entry := range entries {
			if victimIdx == -1 || entry.Second < victimHits {
				victimHash = h
				victimIdx = i
				victimHits = entry.Second
			}
		}
	}
	if victimIdx == -1 {
		return
	}
	entries := c.buckets[victimHash]
	entries = append(entries[:victimIdx], entries[victimIdx+1:]...)
	if len(entries) == 0 {
		delete(c.buckets, victimHash)
	} else {
		c.buckets[victimHash] = entries
	}
	c.numPlans--
}

package common

var LogLevelSetting LogLevel = INFO

// When true, PlanCache.Put verifies the inserted plan is shaped as a tree
// (no node reachable twice) before admitting it.
var EnablePlanTreeCheck bool = false

const (
	// default number of plans a PlanCache holds before evicting
	PlanCacheCapacity = 128
)

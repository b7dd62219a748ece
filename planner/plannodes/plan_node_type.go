package plannodes

import (
	"encoding/json"
	"fmt"
)

// PlanNodeType is the closed set of tags identifying every concrete plan
// node variant. The tag is fixed per variant and is what equality checks,
// the serializer and the executor dispatch on.
type PlanNodeType int32

const (
	Invalid PlanNodeType = iota
	SeqScan
	IndexScan
	NestedLoopJoin
	HashJoin
	Aggregate
	OrderBy
	Limit
	Projection
	Insert
	Update
	Delete
	Analyze
	CreateNamespace
	DropDatabase
	DropNamespace
	DropTable
	Result
)

var planNodeTypeNames = [...]string{
	Invalid:         "Invalid",
	SeqScan:         "SeqScan",
	IndexScan:       "IndexScan",
	NestedLoopJoin:  "NestedLoopJoin",
	HashJoin:        "HashJoin",
	Aggregate:       "Aggregate",
	OrderBy:         "OrderBy",
	Limit:           "Limit",
	Projection:      "Projection",
	Insert:          "Insert",
	Update:          "Update",
	Delete:          "Delete",
	Analyze:         "Analyze",
	CreateNamespace: "CreateNamespace",
	DropDatabase:    "DropDatabase",
	DropNamespace:   "DropNamespace",
	DropTable:       "DropTable",
	Result:          "Result",
}

func (t PlanNodeType) String() string {
	if int(t) < len(planNodeTypeNames) {
		return planNodeTypeNames[t]
	}
	return fmt.Sprintf("PlanNodeType(%d)", int32(t))
}

var planNodeTypeFromName = map[string]PlanNodeType{}

func init() {
	for t, name := range planNodeTypeNames {
		planNodeTypeFromName[name] = PlanNodeType(t)
	}
}

// The tag is serialized as its name, not its integer value, so that
// reordering this enum does not break persisted plans.
func (t PlanNodeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PlanNodeType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := planNodeTypeFromName[name]
	if !ok {
		return &DeserializeError{Field: "PlanNodeType", Reason: fmt.Sprintf("unknown plan node type %q", name)}
	}
	*t = parsed
	return nil
}

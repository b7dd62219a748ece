package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/execution/expression"
)

// DeserializeError reports a malformed plan node document: a missing or
// mismatched type tag, or a required variant field that is absent. Required
// catalog identifiers are never silently defaulted.
type DeserializeError struct {
	Variant PlanNodeType
	Field   string
	Reason  string
}

func (e *DeserializeError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "required field is missing"
	}
	if e.Variant == Invalid {
		return fmt.Sprintf("plan node deserialization failed: field %s: %s", e.Field, reason)
	}
	return fmt.Sprintf("%s plan node deserialization failed: field %s: %s", e.Variant, e.Field, reason)
}

// DeserializePlanNode reconstructs a plan node (and, recursively, its
// children) from a document produced by ToJSON. Every expression rebuilt
// along the way is returned to the caller, which owns it; the nodes alias
// the same objects.
func DeserializePlanNode(data json.RawMessage) (Plan, []expression.Expression, error) {
	var probe struct {
		PlanNodeType PlanNodeType `json:"PlanNodeType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, err
	}

	var node Plan
	switch probe.PlanNodeType {
	case SeqScan:
		node = &SeqScanPlanNode{}
	case IndexScan:
		node = &IndexScanPlanNode{}
	case NestedLoopJoin:
		node = &NestedLoopJoinPlanNode{}
	case HashJoin:
		node = &HashJoinPlanNode{}
	case Aggregate:
		node = &AggregatePlanNode{}
	case OrderBy:
		node = &OrderByPlanNode{}
	case Limit:
		node = &LimitPlanNode{}
	case Projection:
		node = &ProjectionPlanNode{}
	case Insert:
		node = &InsertPlanNode{}
	case Update:
		node = &UpdatePlanNode{}
	case Delete:
		node = &DeletePlanNode{}
	case Analyze:
		node = &AnalyzePlanNode{}
	case CreateNamespace:
		node = &CreateNamespacePlanNode{}
	case DropDatabase:
		node = &DropDatabasePlanNode{}
	case DropNamespace:
		node = &DropNamespacePlanNode{}
	case DropTable:
		node = &DropTablePlanNode{}
	case Result:
		node = &ResultPlanNode{}
	case Invalid:
		return nil, nil, &DeserializeError{Field: "PlanNodeType", Reason: "missing type tag"}
	default:
		return nil, nil, &DeserializeError{Field: "PlanNodeType",
			Reason: fmt.Sprintf("unknown plan node type tag %d", probe.PlanNodeType)}
	}

	exprs, err := node.FromJSON(data)
	if err != nil {
		return nil, nil, err
	}
	return node, exprs, nil
}

// SerializePlanNode is the counterpart of DeserializePlanNode.
func SerializePlanNode(p Plan) ([]byte, error) {
	return p.ToJSON()
}

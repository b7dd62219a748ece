package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/common"
	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * NestedLoopJoinPlanNode is used to represent performing a nested loop join
 * between two children plan nodes. By convention, the left child is index 0
 * and the right child is index 1.
 */
type NestedLoopJoinPlanNode struct {
	*BasePlanNode
	joinPredicate expression.Expression
}

type NestedLoopJoinPlanNodeBuilder struct {
	planNodeBuilder
	joinPredicate expression.Expression
}

func NewNestedLoopJoinPlanNodeBuilder() *NestedLoopJoinPlanNodeBuilder {
	return &NestedLoopJoinPlanNodeBuilder{}
}

func (b *NestedLoopJoinPlanNodeBuilder) SetJoinPredicate(joinPredicate expression.Expression) *NestedLoopJoinPlanNodeBuilder {
	b.joinPredicate = joinPredicate
	return b
}

func (b *NestedLoopJoinPlanNodeBuilder) AddChild(child Plan) *NestedLoopJoinPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *NestedLoopJoinPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *NestedLoopJoinPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *NestedLoopJoinPlanNodeBuilder) Build() *NestedLoopJoinPlanNode {
	base := b.buildBase()
	return &NestedLoopJoinPlanNode{&base, b.joinPredicate}
}

func (p *NestedLoopJoinPlanNode) GetPlanNodeType() PlanNodeType { return NestedLoopJoin }

/** @return the join predicate, may be nil for a cross product */
func (p *NestedLoopJoinPlanNode) GetJoinPredicate() expression.Expression { return p.joinPredicate }

/** @return the left plan node of the join */
func (p *NestedLoopJoinPlanNode) GetLeftPlan() Plan {
	common.KDB_Assert(len(p.GetChildren()) == 2, "Nested loop joins should have exactly two children plans.")
	return p.GetChildAt(0)
}

/** @return the right plan node of the join */
func (p *NestedLoopJoinPlanNode) GetRightPlan() Plan {
	common.KDB_Assert(len(p.GetChildren()) == 2, "Nested loop joins should have exactly two children plans.")
	return p.GetChildAt(1)
}

func (p *NestedLoopJoinPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(NestedLoopJoin))
	h = combineExprHash(h, p.joinPredicate)
	return p.combineBaseHash(h)
}

func (p *NestedLoopJoinPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*NestedLoopJoinPlanNode)
	if !ok {
		return false
	}
	if !exprEquals(p.joinPredicate, other.joinPredicate) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *NestedLoopJoinPlanNode) GetDebugStr() string {
	return fmt.Sprintf("NestedLoopJoin(children:%d)", len(p.GetChildren()))
}

type nestedLoopJoinPlanJSON struct {
	basePlanJSON
	JoinPredicate json.RawMessage `json:"JoinPredicate"`
}

func (p *NestedLoopJoinPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(NestedLoopJoin)
	if err != nil {
		return nil, err
	}
	joinPredicate, err := marshalExpr(p.joinPredicate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&nestedLoopJoinPlanJSON{base, joinPredicate})
}

func (p *NestedLoopJoinPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j nestedLoopJoinPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, NestedLoopJoin)
	if err != nil {
		return nil, err
	}
	joinPredicate, err := unmarshalExpr(j.JoinPredicate)
	if err != nil {
		return nil, err
	}
	if joinPredicate != nil {
		exprs = append(exprs, joinPredicate)
	}
	p.BasePlanNode = base
	p.joinPredicate = joinPredicate
	return exprs, nil
}

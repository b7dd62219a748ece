package plannodes

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * ResultPlanNode produces the output of a constant query: it has no variant
 * fields of its own, only the output schema (and at most one child whose
 * output it passes through).
 */
type ResultPlanNode struct {
	*BasePlanNode
}

type ResultPlanNodeBuilder struct {
	planNodeBuilder
}

func NewResultPlanNodeBuilder() *ResultPlanNodeBuilder {
	return &ResultPlanNodeBuilder{}
}

func (b *ResultPlanNodeBuilder) AddChild(child Plan) *ResultPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *ResultPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *ResultPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *ResultPlanNodeBuilder) Build() *ResultPlanNode {
	base := b.buildBase()
	return &ResultPlanNode{&base}
}

func (p *ResultPlanNode) GetPlanNodeType() PlanNodeType { return Result }

func (p *ResultPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Result))
	return p.combineBaseHash(h)
}

func (p *ResultPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*ResultPlanNode)
	if !ok {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *ResultPlanNode) GetDebugStr() string { return "Result" }

func (p *ResultPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Result)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&base)
}

func (p *ResultPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j basePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	base, exprs, err := decodeBase(&j, Result)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * ProjectionPlanNode evaluates an ordered list of expressions against the
 * child's output to produce its own output columns.
 */
type ProjectionPlanNode struct {
	*BasePlanNode
	expressions []expression.Expression
}

type ProjectionPlanNodeBuilder struct {
	planNodeBuilder
	expressions []expression.Expression
}

func NewProjectionPlanNodeBuilder() *ProjectionPlanNodeBuilder {
	return &ProjectionPlanNodeBuilder{}
}

func (b *ProjectionPlanNodeBuilder) SetExpressions(expressions []expression.Expression) *ProjectionPlanNodeBuilder {
	b.expressions = expressions
	return b
}

func (b *ProjectionPlanNodeBuilder) AddChild(child Plan) *ProjectionPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *ProjectionPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *ProjectionPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *ProjectionPlanNodeBuilder) Build() *ProjectionPlanNode {
	base := b.buildBase()
	expressions := b.expressions
	b.expressions = nil
	return &ProjectionPlanNode{&base, expressions}
}

func (p *ProjectionPlanNode) GetPlanNodeType() PlanNodeType { return Projection }

/** @return the projection terms in output order */
func (p *ProjectionPlanNode) GetExpressions() []expression.Expression { return p.expressions }

/** @return the idx'th projection term */
func (p *ProjectionPlanNode) GetExpressionAt(idx uint32) expression.Expression {
	return p.expressions[idx]
}

func (p *ProjectionPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Projection))
	h = combineExprsHash(h, p.expressions)
	return p.combineBaseHash(h)
}

func (p *ProjectionPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*ProjectionPlanNode)
	if !ok {
		return false
	}
	if !exprsEqual(p.expressions, other.expressions) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *ProjectionPlanNode) GetDebugStr() string {
	return fmt.Sprintf("Projection(exprs:%d)", len(p.expressions))
}

type projectionPlanJSON struct {
	basePlanJSON
	Expressions []json.RawMessage `json:"Expressions"`
}

func (p *ProjectionPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Projection)
	if err != nil {
		return nil, err
	}
	expressions, err := marshalExprs(p.expressions)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&projectionPlanJSON{base, expressions})
}

func (p *ProjectionPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j projectionPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Projection)
	if err != nil {
		return nil, err
	}
	expressions, err := unmarshalExprs(j.Expressions)
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, expressions...)
	p.BasePlanNode = base
	p.expressions = expressions
	return exprs, nil
}

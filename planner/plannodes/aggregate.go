package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

type AggregationType int32

/** The kind of SQL aggregation function. */
const (
	COUNT_AGGREGATE AggregationType = iota
	SUM_AGGREGATE
	MIN_AGGREGATE
	MAX_AGGREGATE
)

/**
 * AggregatePlanNode represents the various SQL aggregation functions,
 * for example COUNT(), SUM(), MIN() and MAX(). The aggregates and their
 * kinds are parallel slices; ordering matters for both the group-by terms
 * and the aggregate terms.
 */
type AggregatePlanNode struct {
	*BasePlanNode
	having         expression.Expression
	groupBys       []expression.Expression
	aggregates     []expression.Expression
	aggregateTypes []AggregationType
}

type AggregatePlanNodeBuilder struct {
	planNodeBuilder
	having         expression.Expression
	groupBys       []expression.Expression
	aggregates     []expression.Expression
	aggregateTypes []AggregationType
}

func NewAggregatePlanNodeBuilder() *AggregatePlanNodeBuilder {
	return &AggregatePlanNodeBuilder{}
}

func (b *AggregatePlanNodeBuilder) SetHaving(having expression.Expression) *AggregatePlanNodeBuilder {
	b.having = having
	return b
}

func (b *AggregatePlanNodeBuilder) SetGroupBys(groupBys []expression.Expression) *AggregatePlanNodeBuilder {
	b.groupBys = groupBys
	return b
}

func (b *AggregatePlanNodeBuilder) AddAggregate(aggregate expression.Expression, aggregateType AggregationType) *AggregatePlanNodeBuilder {
	b.aggregates = append(b.aggregates, aggregate)
	b.aggregateTypes = append(b.aggregateTypes, aggregateType)
	return b
}

func (b *AggregatePlanNodeBuilder) AddChild(child Plan) *AggregatePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *AggregatePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *AggregatePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *AggregatePlanNodeBuilder) Build() *AggregatePlanNode {
	base := b.buildBase()
	groupBys := b.groupBys
	b.groupBys = nil
	aggregates := b.aggregates
	b.aggregates = nil
	aggregateTypes := b.aggregateTypes
	b.aggregateTypes = nil
	return &AggregatePlanNode{&base, b.having, groupBys, aggregates, aggregateTypes}
}

func (p *AggregatePlanNode) GetPlanNodeType() PlanNodeType { return Aggregate }

/** @return the having clause, may be nil */
func (p *AggregatePlanNode) GetHaving() expression.Expression { return p.having }

/** @return the idx'th group by expression */
func (p *AggregatePlanNode) GetGroupByAt(idx uint32) expression.Expression { return p.groupBys[idx] }

/** @return the group by expressions */
func (p *AggregatePlanNode) GetGroupBys() []expression.Expression { return p.groupBys }

/** @return the idx'th aggregate expression */
func (p *AggregatePlanNode) GetAggregateAt(idx uint32) expression.Expression {
	return p.aggregates[idx]
}

/** @return the aggregate expressions */
func (p *AggregatePlanNode) GetAggregates() []expression.Expression { return p.aggregates }

/** @return the aggregate kinds */
func (p *AggregatePlanNode) GetAggregateTypes() []AggregationType { return p.aggregateTypes }

func (p *AggregatePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Aggregate))
	h = combineExprHash(h, p.having)
	h = combineExprsHash(h, p.groupBys)
	h = combineExprsHash(h, p.aggregates)
	for _, aggType := range p.aggregateTypes {
		h = hash.CombineHashes(h, hash.HashUint32(uint32(aggType)))
	}
	return p.combineBaseHash(h)
}

func (p *AggregatePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*AggregatePlanNode)
	if !ok {
		return false
	}
	if !exprEquals(p.having, other.having) {
		return false
	}
	if !exprsEqual(p.groupBys, other.groupBys) {
		return false
	}
	if !exprsEqual(p.aggregates, other.aggregates) {
		return false
	}
	if len(p.aggregateTypes) != len(other.aggregateTypes) {
		return false
	}
	for i, aggType := range p.aggregateTypes {
		if aggType != other.aggregateTypes[i] {
			return false
		}
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *AggregatePlanNode) GetDebugStr() string {
	return fmt.Sprintf("Aggregate(groupBys:%d aggregates:%d)", len(p.groupBys), len(p.aggregates))
}

type aggregatePlanJSON struct {
	basePlanJSON
	Having         json.RawMessage   `json:"Having"`
	GroupBys       []json.RawMessage `json:"GroupBys"`
	Aggregates     []json.RawMessage `json:"Aggregates"`
	AggregateTypes []AggregationType `json:"AggregateTypes"`
}

func (p *AggregatePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Aggregate)
	if err != nil {
		return nil, err
	}
	having, err := marshalExpr(p.having)
	if err != nil {
		return nil, err
	}
	groupBys, err := marshalExprs(p.groupBys)
	if err != nil {
		return nil, err
	}
	aggregates, err := marshalExprs(p.aggregates)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&aggregatePlanJSON{base, having, groupBys, aggregates, p.aggregateTypes})
}

func (p *AggregatePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j aggregatePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if len(j.Aggregates) != len(j.AggregateTypes) {
		return nil, &DeserializeError{Variant: Aggregate, Field: "AggregateTypes",
			Reason: "aggregate kinds and aggregate expressions differ in count"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Aggregate)
	if err != nil {
		return nil, err
	}
	having, err := unmarshalExpr(j.Having)
	if err != nil {
		return nil, err
	}
	groupBys, err := unmarshalExprs(j.GroupBys)
	if err != nil {
		return nil, err
	}
	aggregates, err := unmarshalExprs(j.Aggregates)
	if err != nil {
		return nil, err
	}
	if having != nil {
		exprs = append(exprs, having)
	}
	exprs = append(exprs, groupBys...)
	exprs = append(exprs, aggregates...)
	p.BasePlanNode = base
	p.having = having
	p.groupBys = groupBys
	p.aggregates = aggregates
	p.aggregateTypes = j.AggregateTypes
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * LimitPlanNode limits the number of tuples produced by its child, after
 * skipping the first offset tuples.
 */
type LimitPlanNode struct {
	*BasePlanNode
	limit  uint64
	offset uint64
}

type LimitPlanNodeBuilder struct {
	planNodeBuilder
	limit  uint64
	offset uint64
}

func NewLimitPlanNodeBuilder() *LimitPlanNodeBuilder {
	return &LimitPlanNodeBuilder{}
}

func (b *LimitPlanNodeBuilder) SetLimit(limit uint64) *LimitPlanNodeBuilder {
	b.limit = limit
	return b
}

func (b *LimitPlanNodeBuilder) SetOffset(offset uint64) *LimitPlanNodeBuilder {
	b.offset = offset
	return b
}

func (b *LimitPlanNodeBuilder) AddChild(child Plan) *LimitPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *LimitPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *LimitPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *LimitPlanNodeBuilder) Build() *LimitPlanNode {
	base := b.buildBase()
	return &LimitPlanNode{&base, b.limit, b.offset}
}

func (p *LimitPlanNode) GetPlanNodeType() PlanNodeType { return Limit }

func (p *LimitPlanNode) GetLimit() uint64 { return p.limit }

func (p *LimitPlanNode) GetOffset() uint64 { return p.offset }

func (p *LimitPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Limit))
	h = hash.CombineHashes(h, hash.HashUint64(p.limit))
	h = hash.CombineHashes(h, hash.HashUint64(p.offset))
	return p.combineBaseHash(h)
}

func (p *LimitPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*LimitPlanNode)
	if !ok {
		return false
	}
	if p.limit != other.limit || p.offset != other.offset {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *LimitPlanNode) GetDebugStr() string {
	return fmt.Sprintf("Limit(limit:%d offset:%d)", p.limit, p.offset)
}

type limitPlanJSON struct {
	basePlanJSON
	Limit  *uint64 `json:"Limit"`
	Offset *uint64 `json:"Offset"`
}

func (p *LimitPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Limit)
	if err != nil {
		return nil, err
	}
	limit := p.limit
	offset := p.offset
	return json.Marshal(&limitPlanJSON{base, &limit, &offset})
}

func (p *LimitPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j limitPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.Limit == nil {
		return nil, &DeserializeError{Variant: Limit, Field: "Limit"}
	}
	if j.Offset == nil {
		return nil, &DeserializeError{Variant: Limit, Field: "Offset"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Limit)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.limit = *j.Limit
	p.offset = *j.Offset
	return exprs, nil
}

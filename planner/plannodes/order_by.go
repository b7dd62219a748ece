package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

type OrderByDir int32

const (
	ASC OrderByDir = iota
	DESC
)

/**
 * SortKey is one term of an ORDER BY clause: a column index into the child's
 * output plus a direction.
 */
type SortKey struct {
	ColIndex uint32     `json:"ColIndex"`
	Order    OrderByDir `json:"Order"`
}

/**
 * OrderByPlanNode sorts the child's output by the given keys. Key order is
 * significant: earlier keys are the more significant sort terms.
 */
type OrderByPlanNode struct {
	*BasePlanNode
	sortKeys []SortKey
}

type OrderByPlanNodeBuilder struct {
	planNodeBuilder
	sortKeys []SortKey
}

func NewOrderByPlanNodeBuilder() *OrderByPlanNodeBuilder {
	return &OrderByPlanNodeBuilder{}
}

func (b *OrderByPlanNodeBuilder) AddSortKey(colIndex uint32, order OrderByDir) *OrderByPlanNodeBuilder {
	b.sortKeys = append(b.sortKeys, SortKey{colIndex, order})
	return b
}

func (b *OrderByPlanNodeBuilder) AddChild(child Plan) *OrderByPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *OrderByPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *OrderByPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *OrderByPlanNodeBuilder) Build() *OrderByPlanNode {
	base := b.buildBase()
	sortKeys := b.sortKeys
	b.sortKeys = nil
	return &OrderByPlanNode{&base, sortKeys}
}

func (p *OrderByPlanNode) GetPlanNodeType() PlanNodeType { return OrderBy }

/** @return the sort keys, most significant first */
func (p *OrderByPlanNode) GetSortKeys() []SortKey { return p.sortKeys }

func (p *OrderByPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(OrderBy))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(len(p.sortKeys))))
	for _, key := range p.sortKeys {
		h = hash.CombineHashes(h, hash.HashUint32(key.ColIndex))
		h = hash.CombineHashes(h, hash.HashUint32(uint32(key.Order)))
	}
	return p.combineBaseHash(h)
}

func (p *OrderByPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*OrderByPlanNode)
	if !ok {
		return false
	}
	if len(p.sortKeys) != len(other.sortKeys) {
		return false
	}
	for i, key := range p.sortKeys {
		if key != other.sortKeys[i] {
			return false
		}
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *OrderByPlanNode) GetDebugStr() string {
	return fmt.Sprintf("OrderBy(keys:%v)", p.sortKeys)
}

type orderByPlanJSON struct {
	basePlanJSON
	SortKeys []SortKey `json:"SortKeys"`
}

func (p *OrderByPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(OrderBy)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&orderByPlanJSON{base, p.sortKeys})
}

func (p *OrderByPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j orderByPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, OrderBy)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.sortKeys = j.SortKeys
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/common"
	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * HashJoinPlanNode is used to represent performing a hash join between two
 * children plan nodes. By convention, the left child (index 0) is used to
 * build the hash table, and the right child (index 1) is used in probing
 * the hash table.
 */
type HashJoinPlanNode struct {
	*BasePlanNode
	onPredicate   expression.Expression
	leftHashKeys  []expression.Expression
	rightHashKeys []expression.Expression
}

type HashJoinPlanNodeBuilder struct {
	planNodeBuilder
	onPredicate   expression.Expression
	leftHashKeys  []expression.Expression
	rightHashKeys []expression.Expression
}

func NewHashJoinPlanNodeBuilder() *HashJoinPlanNodeBuilder {
	return &HashJoinPlanNodeBuilder{}
}

func (b *HashJoinPlanNodeBuilder) SetOnPredicate(onPredicate expression.Expression) *HashJoinPlanNodeBuilder {
	b.onPredicate = onPredicate
	return b
}

func (b *HashJoinPlanNodeBuilder) SetLeftHashKeys(leftHashKeys []expression.Expression) *HashJoinPlanNodeBuilder {
	b.leftHashKeys = leftHashKeys
	return b
}

func (b *HashJoinPlanNodeBuilder) SetRightHashKeys(rightHashKeys []expression.Expression) *HashJoinPlanNodeBuilder {
	b.rightHashKeys = rightHashKeys
	return b
}

func (b *HashJoinPlanNodeBuilder) AddChild(child Plan) *HashJoinPlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *HashJoinPlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *HashJoinPlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *HashJoinPlanNodeBuilder) Build() *HashJoinPlanNode {
	base := b.buildBase()
	leftHashKeys := b.leftHashKeys
	b.leftHashKeys = nil
	rightHashKeys := b.rightHashKeys
	b.rightHashKeys = nil
	return &HashJoinPlanNode{&base, b.onPredicate, leftHashKeys, rightHashKeys}
}

func (p *HashJoinPlanNode) GetPlanNodeType() PlanNodeType { return HashJoin }

/** @return the onPredicate to be used in the hash join */
func (p *HashJoinPlanNode) OnPredicate() expression.Expression { return p.onPredicate }

/** @return the left plan node of the hash join, by convention this is used to build the table */
func (p *HashJoinPlanNode) GetLeftPlan() Plan {
	common.KDB_Assert(len(p.GetChildren()) == 2, "Hash joins should have exactly two children plans.")
	return p.GetChildAt(0)
}

/** @return the right plan node of the hash join */
func (p *HashJoinPlanNode) GetRightPlan() Plan {
	common.KDB_Assert(len(p.GetChildren()) == 2, "Hash joins should have exactly two children plans.")
	return p.GetChildAt(1)
}

/** @return the left key at the given index */
func (p *HashJoinPlanNode) GetLeftKeyAt(idx uint32) expression.Expression {
	return p.leftHashKeys[idx]
}

/** @return the left keys */
func (p *HashJoinPlanNode) GetLeftKeys() []expression.Expression { return p.leftHashKeys }

/** @return the right key at the given index */
func (p *HashJoinPlanNode) GetRightKeyAt(idx uint32) expression.Expression {
	return p.rightHashKeys[idx]
}

/** @return the right keys */
func (p *HashJoinPlanNode) GetRightKeys() []expression.Expression { return p.rightHashKeys }

func (p *HashJoinPlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(HashJoin))
	h = combineExprHash(h, p.onPredicate)
	h = combineExprsHash(h, p.leftHashKeys)
	h = combineExprsHash(h, p.rightHashKeys)
	return p.combineBaseHash(h)
}

func (p *HashJoinPlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*HashJoinPlanNode)
	if !ok {
		return false
	}
	if !exprEquals(p.onPredicate, other.onPredicate) {
		return false
	}
	if !exprsEqual(p.leftHashKeys, other.leftHashKeys) {
		return false
	}
	if !exprsEqual(p.rightHashKeys, other.rightHashKeys) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *HashJoinPlanNode) GetDebugStr() string {
	return fmt.Sprintf("HashJoin(keys:%d)", len(p.leftHashKeys))
}

type hashJoinPlanJSON struct {
	basePlanJSON
	OnPredicate   json.RawMessage   `json:"OnPredicate"`
	LeftHashKeys  []json.RawMessage `json:"LeftHashKeys"`
	RightHashKeys []json.RawMessage `json:"RightHashKeys"`
}

func (p *HashJoinPlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(HashJoin)
	if err != nil {
		return nil, err
	}
	onPredicate, err := marshalExpr(p.onPredicate)
	if err != nil {
		return nil, err
	}
	leftHashKeys, err := marshalExprs(p.leftHashKeys)
	if err != nil {
		return nil, err
	}
	rightHashKeys, err := marshalExprs(p.rightHashKeys)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&hashJoinPlanJSON{base, onPredicate, leftHashKeys, rightHashKeys})
}

func (p *HashJoinPlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j hashJoinPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, HashJoin)
	if err != nil {
		return nil, err
	}
	onPredicate, err := unmarshalExpr(j.OnPredicate)
	if err != nil {
		return nil, err
	}
	leftHashKeys, err := unmarshalExprs(j.LeftHashKeys)
	if err != nil {
		return nil, err
	}
	rightHashKeys, err := unmarshalExprs(j.RightHashKeys)
	if err != nil {
		return nil, err
	}
	if onPredicate != nil {
		exprs = append(exprs, onPredicate)
	}
	exprs = append(exprs, leftHashKeys...)
	exprs = append(exprs, rightHashKeys...)
	p.BasePlanNode = base
	p.onPredicate = onPredicate
	p.leftHashKeys = leftHashKeys
	p.rightHashKeys = rightHashKeys
	return exprs, nil
}

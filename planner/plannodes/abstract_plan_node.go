package plannodes

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/common"
	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * Plan is the contract every concrete plan node variant implements.
 *
 * A built node is immutable: none of these methods mutate observable state,
 * so a plan tree can be read from any number of goroutines concurrently
 * (cache lookups hashing a tree while executors walk it) without locking.
 */
type Plan interface {
	// GetPlanNodeType returns the fixed tag of the variant; it is a pure
	// function of the concrete type, not of the instance.
	GetPlanNodeType() PlanNodeType
	OutputSchema() *OutputSchema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	// Hash combines, in this fixed order: the type tag, every variant field
	// in declaration order, the output schema if present, and each child's
	// Hash in child order. Value-based: independently built structurally
	// identical trees hash equal.
	Hash() uint32
	// Equals is structural: same concrete type, identical variant fields,
	// equal (or both absent) output schema, pairwise-equal children in the
	// same order and count. Equals implies equal Hash.
	Equals(rhs Plan) bool
	ToJSON() (json.RawMessage, error)
	// FromJSON rebuilds the receiver from a document produced by ToJSON and
	// returns every reconstructed expression to the caller. The caller owns
	// the returned expressions; the node's fields alias them. Deserialization
	// is therefore not a pure inverse of serialization.
	FromJSON(data json.RawMessage) ([]expression.Expression, error)
	GetDebugStr() string
}

/**
 * BasePlanNode holds what every variant has: the ordered child plan nodes
 * (exclusively owned by this node) and the optional output schema.
 */
type BasePlanNode struct {
	outputSchema *OutputSchema
	children     []Plan
}

func (p *BasePlanNode) OutputSchema() *OutputSchema { return p.outputSchema }

func (p *BasePlanNode) GetChildAt(childIndex uint32) Plan { return p.children[childIndex] }

func (p *BasePlanNode) GetChildren() []Plan { return p.children }

// combineBaseHash folds the output schema (if present) and the children, in
// order, into a variant's field hash.
func (p *BasePlanNode) combineBaseHash(h uint32) uint32 {
	if p.outputSchema != nil {
		h = hash.CombineHashes(h, p.outputSchema.Hash())
	}
	for _, child := range p.children {
		h = hash.CombineHashes(h, child.Hash())
	}
	return h
}

func (p *BasePlanNode) equalsBase(rhs *BasePlanNode) bool {
	if (p.outputSchema == nil) != (rhs.outputSchema == nil) {
		return false
	}
	if p.outputSchema != nil && !p.outputSchema.Equals(rhs.outputSchema) {
		return false
	}
	if len(p.children) != len(rhs.children) {
		return false
	}
	for i, child := range p.children {
		if !child.Equals(rhs.children[i]) {
			return false
		}
	}
	return true
}

// basePlanJSON is the common part of every serialized plan node document.
// Variant envelopes embed it so the emitted object is flat.
type basePlanJSON struct {
	PlanNodeType PlanNodeType      `json:"PlanNodeType"`
	OutputSchema *OutputSchema     `json:"OutputSchema"`
	Children     []json.RawMessage `json:"Children"`
}

func (p *BasePlanNode) baseJSON(t PlanNodeType) (basePlanJSON, error) {
	children := make([]json.RawMessage, 0, len(p.children))
	for _, child := range p.children {
		data, err := child.ToJSON()
		if err != nil {
			return basePlanJSON{}, err
		}
		children = append(children, data)
	}
	return basePlanJSON{t, p.outputSchema, children}, nil
}

// decodeBase checks the type tag and rebuilds children (collecting the
// expressions their FromJSON hands back).
func decodeBase(j *basePlanJSON, expected PlanNodeType) (*BasePlanNode, []expression.Expression, error) {
	if j.PlanNodeType == Invalid {
		return nil, nil, &DeserializeError{Variant: expected, Field: "PlanNodeType", Reason: "missing type tag"}
	}
	if j.PlanNodeType != expected {
		return nil, nil, &DeserializeError{Variant: expected, Field: "PlanNodeType",
			Reason: "type tag " + j.PlanNodeType.String() + " does not match the expected variant"}
	}
	children := make([]Plan, 0, len(j.Children))
	exprs := make([]expression.Expression, 0)
	for _, childData := range j.Children {
		child, childExprs, err := DeserializePlanNode(childData)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, child)
		exprs = append(exprs, childExprs...)
	}
	return &BasePlanNode{j.OutputSchema, children}, exprs, nil
}

// noCopy makes go vet flag builders that get copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

/**
 * planNodeBuilder is the staging state shared by every variant builder:
 * accumulated children and output schema, plus the single-use guard.
 *
 * Builders are single-owner and not goroutine safe. Build steals the
 * accumulated state, so a built node never aliases builder-owned buffers and
 * a second Build call panics.
 */
type planNodeBuilder struct {
	noCopy       noCopy //nolint:structcheck,unused
	outputSchema *OutputSchema
	children     []Plan
	built        bool
}

func (b *planNodeBuilder) addChild(child Plan) {
	b.children = append(b.children, child)
}

func (b *planNodeBuilder) setOutputSchema(schema *OutputSchema) {
	b.outputSchema = schema
}

func (b *planNodeBuilder) buildBase() BasePlanNode {
	common.KDB_Assert(!b.built, "Build must be called at most once per plan node builder")
	b.built = true
	children := b.children
	b.children = nil
	schema := b.outputSchema
	b.outputSchema = nil
	return BasePlanNode{schema, children}
}

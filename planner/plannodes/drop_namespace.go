package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * DropNamespacePlanNode is the plan node for dropping namespaces.
 */
type DropNamespacePlanNode struct {
	*BasePlanNode
	namespaceOID types.NamespaceOID
}

type DropNamespacePlanNodeBuilder struct {
	planNodeBuilder
	namespaceOID types.NamespaceOID
}

func NewDropNamespacePlanNodeBuilder() *DropNamespacePlanNodeBuilder {
	return &DropNamespacePlanNodeBuilder{}
}

func (b *DropNamespacePlanNodeBuilder) SetNamespaceOID(namespaceOID types.NamespaceOID) *DropNamespacePlanNodeBuilder {
	b.namespaceOID = namespaceOID
	return b
}

func (b *DropNamespacePlanNodeBuilder) AddChild(child Plan) *DropNamespacePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *DropNamespacePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *DropNamespacePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *DropNamespacePlanNodeBuilder) Build() *DropNamespacePlanNode {
	base := b.buildBase()
	return &DropNamespacePlanNode{&base, b.namespaceOID}
}

func (p *DropNamespacePlanNode) GetPlanNodeType() PlanNodeType { return DropNamespace }

/** @return OID of the namespace to drop */
func (p *DropNamespacePlanNode) GetNamespaceOID() types.NamespaceOID { return p.namespaceOID }

func (p *DropNamespacePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(DropNamespace))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.namespaceOID)))
	return p.combineBaseHash(h)
}

func (p *DropNamespacePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*DropNamespacePlanNode)
	if !ok {
		return false
	}
	if p.namespaceOID != other.namespaceOID {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *DropNamespacePlanNode) GetDebugStr() string {
	return fmt.Sprintf("DropNamespace(ns:%d)", p.namespaceOID)
}

type dropNamespacePlanJSON struct {
	basePlanJSON
	NamespaceOID *types.NamespaceOID `json:"NamespaceOID"`
}

func (p *DropNamespacePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(DropNamespace)
	if err != nil {
		return nil, err
	}
	namespaceOID := p.namespaceOID
	return json.Marshal(&dropNamespacePlanJSON{base, &namespaceOID})
}

func (p *DropNamespacePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j dropNamespacePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.NamespaceOID == nil {
		return nil, &DeserializeError{Variant: DropNamespace, Field: "NamespaceOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, DropNamespace)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.namespaceOID = *j.NamespaceOID
	return exprs, nil
}

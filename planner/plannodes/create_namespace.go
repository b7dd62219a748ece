package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
)

/**
 * CreateNamespacePlanNode is the plan node for creating namespaces. The
 * namespace does not exist yet, so it is referenced by name rather than by
 * OID.
 */
type CreateNamespacePlanNode struct {
	*BasePlanNode
	namespaceName string
}

type CreateNamespacePlanNodeBuilder struct {
	planNodeBuilder
	namespaceName string
}

func NewCreateNamespacePlanNodeBuilder() *CreateNamespacePlanNodeBuilder {
	return &CreateNamespacePlanNodeBuilder{}
}

func (b *CreateNamespacePlanNodeBuilder) SetNamespaceName(namespaceName string) *CreateNamespacePlanNodeBuilder {
	b.namespaceName = namespaceName
	return b
}

func (b *CreateNamespacePlanNodeBuilder) AddChild(child Plan) *CreateNamespacePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *CreateNamespacePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *CreateNamespacePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *CreateNamespacePlanNodeBuilder) Build() *CreateNamespacePlanNode {
	base := b.buildBase()
	return &CreateNamespacePlanNode{&base, b.namespaceName}
}

func (p *CreateNamespacePlanNode) GetPlanNodeType() PlanNodeType { return CreateNamespace }

/** @return the name of the namespace to create */
func (p *CreateNamespacePlanNode) GetNamespaceName() string { return p.namespaceName }

func (p *CreateNamespacePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(CreateNamespace))
	h = hash.CombineHashes(h, hash.HashString(p.namespaceName))
	return p.combineBaseHash(h)
}

func (p *CreateNamespacePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*CreateNamespacePlanNode)
	if !ok {
		return false
	}
	if p.namespaceName != other.namespaceName {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *CreateNamespacePlanNode) GetDebugStr() string {
	return fmt.Sprintf("CreateNamespace(name:%s)", p.namespaceName)
}

type createNamespacePlanJSON struct {
	basePlanJSON
	NamespaceName *string `json:"NamespaceName"`
}

func (p *CreateNamespacePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(CreateNamespace)
	if err != nil {
		return nil, err
	}
	name := p.namespaceName
	return json.Marshal(&createNamespacePlanJSON{base, &name})
}

func (p *CreateNamespacePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j createNamespacePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.NamespaceName == nil {
		return nil, &DeserializeError{Variant: CreateNamespace, Field: "NamespaceName"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, CreateNamespace)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.namespaceName = *j.NamespaceName
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * DropTablePlanNode is the plan node for dropping tables.
 */
type DropTablePlanNode struct {
	*BasePlanNode
	tableOID types.TableOID
}

type DropTablePlanNodeBuilder struct {
	planNodeBuilder
	tableOID types.TableOID
}

func NewDropTablePlanNodeBuilder() *DropTablePlanNodeBuilder {
	return &DropTablePlanNodeBuilder{}
}

func (b *DropTablePlanNodeBuilder) SetTableOID(tableOID types.TableOID) *DropTablePlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *DropTablePlanNodeBuilder) AddChild(child Plan) *DropTablePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *DropTablePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *DropTablePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *DropTablePlanNodeBuilder) Build() *DropTablePlanNode {
	base := b.buildBase()
	return &DropTablePlanNode{&base, b.tableOID}
}

func (p *DropTablePlanNode) GetPlanNodeType() PlanNodeType { return DropTable }

/** @return OID of the table to drop */
func (p *DropTablePlanNode) GetTableOID() types.TableOID { return p.tableOID }

func (p *DropTablePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(DropTable))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	return p.combineBaseHash(h)
}

func (p *DropTablePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*DropTablePlanNode)
	if !ok {
		return false
	}
	if p.tableOID != other.tableOID {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *DropTablePlanNode) GetDebugStr() string {
	return fmt.Sprintf("DropTable(tbl:%d)", p.tableOID)
}

type dropTablePlanJSON struct {
	basePlanJSON
	TableOID *types.TableOID `json:"TableOID"`
}

func (p *DropTablePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(DropTable)
	if err != nil {
		return nil, err
	}
	tableOID := p.tableOID
	return json.Marshal(&dropTablePlanJSON{base, &tableOID})
}

func (p *DropTablePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j dropTablePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: DropTable, Field: "TableOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, DropTable)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.tableOID = *j.TableOID
	return exprs, nil
}

package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * DropDatabasePlanNode is the plan node for dropping databases.
 */
type DropDatabasePlanNode struct {
	*BasePlanNode
	databaseOID types.DatabaseOID
}

type DropDatabasePlanNodeBuilder struct {
	planNodeBuilder
	databaseOID types.DatabaseOID
}

func NewDropDatabasePlanNodeBuilder() *DropDatabasePlanNodeBuilder {
	return &DropDatabasePlanNodeBuilder{}
}

func (b *DropDatabasePlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *DropDatabasePlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *DropDatabasePlanNodeBuilder) AddChild(child Plan) *DropDatabasePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *DropDatabasePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *DropDatabasePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *DropDatabasePlanNodeBuilder) Build() *DropDatabasePlanNode {
	base := b.buildBase()
	return &DropDatabasePlanNode{&base, b.databaseOID}
}

func (p *DropDatabasePlanNode) GetPlanNodeType() PlanNodeType { return DropDatabase }

/** @return OID of the database to drop */
func (p *DropDatabasePlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

func (p *DropDatabasePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(DropDatabase))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	return p.combineBaseHash(h)
}

func (p *DropDatabasePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*DropDatabasePlanNode)
	if !ok {
		return false
	}
	if p.databaseOID != other.databaseOID {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *DropDatabasePlanNode) GetDebugStr() string {
	return fmt.Sprintf("DropDatabase(db:%d)", p.databaseOID)
}

type dropDatabasePlanJSON struct {
	basePlanJSON
	DatabaseOID *types.DatabaseOID `json:"DatabaseOID"`
}

func (p *DropDatabasePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(DropDatabase)
	if err != nil {
		return nil, err
	}
	databaseOID := p.databaseOID
	return json.Marshal(&dropDatabasePlanJSON{base, &databaseOID})
}

func (p *DropDatabasePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j dropDatabasePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: DropDatabase, Field: "DatabaseOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, DropDatabase)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.databaseOID = *j.DatabaseOID
	return exprs, nil
}

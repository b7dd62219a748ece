package plannodes

import (
	"encoding/json"
	"fmt"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * AnalyzePlanNode is the plan node for ANALYZE. The column OID order is
 * significant: it defines the column set and order to be scanned for
 * statistics.
 */
type AnalyzePlanNode struct {
	*BasePlanNode
	databaseOID  types.DatabaseOID
	namespaceOID types.NamespaceOID
	tableOID     types.TableOID
	columnOIDs   []types.ColumnOID
}

type AnalyzePlanNodeBuilder struct {
	planNodeBuilder
	databaseOID  types.DatabaseOID
	namespaceOID types.NamespaceOID
	tableOID     types.TableOID
	columnOIDs   []types.ColumnOID
}

func NewAnalyzePlanNodeBuilder() *AnalyzePlanNodeBuilder {
	return &AnalyzePlanNodeBuilder{}
}

func (b *AnalyzePlanNodeBuilder) SetDatabaseOID(databaseOID types.DatabaseOID) *AnalyzePlanNodeBuilder {
	b.databaseOID = databaseOID
	return b
}

func (b *AnalyzePlanNodeBuilder) SetNamespaceOID(namespaceOID types.NamespaceOID) *AnalyzePlanNodeBuilder {
	b.namespaceOID = namespaceOID
	return b
}

func (b *AnalyzePlanNodeBuilder) SetTableOID(tableOID types.TableOID) *AnalyzePlanNodeBuilder {
	b.tableOID = tableOID
	return b
}

func (b *AnalyzePlanNodeBuilder) SetColumnOIDs(columnOIDs []types.ColumnOID) *AnalyzePlanNodeBuilder {
	b.columnOIDs = columnOIDs
	return b
}

func (b *AnalyzePlanNodeBuilder) AddChild(child Plan) *AnalyzePlanNodeBuilder {
	b.addChild(child)
	return b
}

func (b *AnalyzePlanNodeBuilder) SetOutputSchema(schema *OutputSchema) *AnalyzePlanNodeBuilder {
	b.setOutputSchema(schema)
	return b
}

func (b *AnalyzePlanNodeBuilder) Build() *AnalyzePlanNode {
	base := b.buildBase()
	columnOIDs := b.columnOIDs
	b.columnOIDs = nil
	return &AnalyzePlanNode{&base, b.databaseOID, b.namespaceOID, b.tableOID, columnOIDs}
}

func (p *AnalyzePlanNode) GetPlanNodeType() PlanNodeType { return Analyze }

/** @return OID of the database */
func (p *AnalyzePlanNode) GetDatabaseOID() types.DatabaseOID { return p.databaseOID }

/** @return OID of the namespace */
func (p *AnalyzePlanNode) GetNamespaceOID() types.NamespaceOID { return p.namespaceOID }

/** @return OID of the target table */
func (p *AnalyzePlanNode) GetTableOID() types.TableOID { return p.tableOID }

/** @return the OIDs of the columns to be analyzed, in scan order */
func (p *AnalyzePlanNode) GetColumnOIDs() []types.ColumnOID { return p.columnOIDs }

func (p *AnalyzePlanNode) Hash() uint32 {
	h := hash.HashUint32(uint32(Analyze))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.databaseOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.namespaceOID)))
	h = hash.CombineHashes(h, hash.HashUint32(uint32(p.tableOID)))
	h = combineColumnOIDsHash(h, p.columnOIDs)
	return p.combineBaseHash(h)
}

func (p *AnalyzePlanNode) Equals(rhs Plan) bool {
	other, ok := rhs.(*AnalyzePlanNode)
	if !ok {
		return false
	}
	if p.databaseOID != other.databaseOID || p.namespaceOID != other.namespaceOID || p.tableOID != other.tableOID {
		return false
	}
	if !columnOIDsEqual(p.columnOIDs, other.columnOIDs) {
		return false
	}
	return p.equalsBase(other.BasePlanNode)
}

func (p *AnalyzePlanNode) GetDebugStr() string {
	return fmt.Sprintf("Analyze(db:%d ns:%d tbl:%d cols:%v)", p.databaseOID, p.namespaceOID, p.tableOID, p.columnOIDs)
}

type analyzePlanJSON struct {
	basePlanJSON
	DatabaseOID  *types.DatabaseOID  `json:"DatabaseOID"`
	NamespaceOID *types.NamespaceOID `json:"NamespaceOID"`
	TableOID     *types.TableOID     `json:"TableOID"`
	ColumnOIDs   []types.ColumnOID   `json:"ColumnOIDs"`
}

func (p *AnalyzePlanNode) ToJSON() (json.RawMessage, error) {
	base, err := p.baseJSON(Analyze)
	if err != nil {
		return nil, err
	}
	databaseOID := p.databaseOID
	namespaceOID := p.namespaceOID
	tableOID := p.tableOID
	return json.Marshal(&analyzePlanJSON{base, &databaseOID, &namespaceOID, &tableOID, p.columnOIDs})
}

func (p *AnalyzePlanNode) FromJSON(data json.RawMessage) ([]expression.Expression, error) {
	var j analyzePlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	if j.DatabaseOID == nil {
		return nil, &DeserializeError{Variant: Analyze, Field: "DatabaseOID"}
	}
	if j.NamespaceOID == nil {
		return nil, &DeserializeError{Variant: Analyze, Field: "NamespaceOID"}
	}
	if j.TableOID == nil {
		return nil, &DeserializeError{Variant: Analyze, Field: "TableOID"}
	}
	base, exprs, err := decodeBase(&j.basePlanJSON, Analyze)
	if err != nil {
		return nil, err
	}
	p.BasePlanNode = base
	p.databaseOID = *j.DatabaseOID
	p.namespaceOID = *j.NamespaceOID
	p.tableOID = *j.TableOID
	p.columnOIDs = j.ColumnOIDs
	return exprs, nil
}

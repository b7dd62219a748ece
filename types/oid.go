package types

import (
	"bytes"
	"encoding/binary"
)

// Catalog object identifiers. The plan layer stores these as opaque values
// and never resolves or validates them; existence and permission checks are
// the catalog's job at execution time.

// DatabaseOID is the type of the database identifier
type DatabaseOID uint32

// NamespaceOID is the type of the namespace identifier
type NamespaceOID uint32

// TableOID is the type of the table identifier
type TableOID uint32

// ColumnOID is the type of the column identifier
type ColumnOID uint32

// IndexOID is the type of the index identifier
type IndexOID uint32

const (
	InvalidDatabaseOID  = DatabaseOID(0)
	InvalidNamespaceOID = NamespaceOID(0)
	InvalidTableOID     = TableOID(0)
	InvalidColumnOID    = ColumnOID(0)
	InvalidIndexOID     = IndexOID(0)
)

// IsValid checks if id is valid
func (id DatabaseOID) IsValid() bool { return id != InvalidDatabaseOID }

// IsValid checks if id is valid
func (id NamespaceOID) IsValid() bool { return id != InvalidNamespaceOID }

// IsValid checks if id is valid
func (id TableOID) IsValid() bool { return id != InvalidTableOID }

// IsValid checks if id is valid
func (id ColumnOID) IsValid() bool { return id != InvalidColumnOID }

// IsValid checks if id is valid
func (id IndexOID) IsValid() bool { return id != InvalidIndexOID }

// Serialize casts it to []byte
func (id DatabaseOID) Serialize() []byte { return serializeUint32(uint32(id)) }

// Serialize casts it to []byte
func (id NamespaceOID) Serialize() []byte { return serializeUint32(uint32(id)) }

// Serialize casts it to []byte
func (id TableOID) Serialize() []byte { return serializeUint32(uint32(id)) }

// Serialize casts it to []byte
func (id ColumnOID) Serialize() []byte { return serializeUint32(uint32(id)) }

// Serialize casts it to []byte
func (id IndexOID) Serialize() []byte { return serializeUint32(uint32(id)) }

func serializeUint32(val uint32) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, val)
	return buf.Bytes()
}

// NewDatabaseOIDFromBytes creates a database oid from []byte
func NewDatabaseOIDFromBytes(data []byte) (ret DatabaseOID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}

// NewNamespaceOIDFromBytes creates a namespace oid from []byte
func NewNamespaceOIDFromBytes(data []byte) (ret NamespaceOID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}

// NewTableOIDFromBytes creates a table oid from []byte
func NewTableOIDFromBytes(data []byte) (ret TableOID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}

// NewColumnOIDFromBytes creates a column oid from []byte
func NewColumnOIDFromBytes(data []byte) (ret ColumnOID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}

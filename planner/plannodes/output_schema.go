package plannodes

import (
	"encoding/json"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/types"
)

/**
 * Column describes one column of a plan node's output.
 */
type Column struct {
	columnName string
	columnType types.TypeID
}

func NewColumn(columnName string, columnType types.TypeID) *Column {
	return &Column{columnName, columnType}
}

func (c *Column) GetColumnName() string { return c.columnName }

func (c *Column) GetType() types.TypeID { return c.columnType }

func (c *Column) Hash() uint32 {
	h := hash.HashString(c.columnName)
	return hash.CombineHashes(h, hash.HashUint32(uint32(c.columnType)))
}

func (c *Column) Equals(rhs *Column) bool {
	return c.columnName == rhs.columnName && c.columnType == rhs.columnType
}

type columnJSON struct {
	ColumnName string       `json:"ColumnName"`
	ColumnType types.TypeID `json:"ColumnType"`
}

func (c *Column) MarshalJSON() ([]byte, error) {
	return json.Marshal(&columnJSON{c.columnName, c.columnType})
}

func (c *Column) UnmarshalJSON(data []byte) error {
	var j columnJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	c.columnName = j.ColumnName
	c.columnType = j.ColumnType
	return nil
}

/**
 * OutputSchema describes the column layout a plan node's execution produces.
 * It is owned exclusively by its plan node; DDL/utility nodes that produce no
 * rows carry none.
 */
type OutputSchema struct {
	columns []*Column
}

func NewOutputSchema(columns []*Column) *OutputSchema {
	return &OutputSchema{columns}
}

func (s *OutputSchema) GetColumns() []*Column { return s.columns }

func (s *OutputSchema) GetColumn(colIndex uint32) *Column { return s.columns[colIndex] }

func (s *OutputSchema) GetColumnCount() uint32 { return uint32(len(s.columns)) }

func (s *OutputSchema) Hash() uint32 {
	h := hash.HashUint32(uint32(len(s.columns)))
	for _, col := range s.columns {
		h = hash.CombineHashes(h, col.Hash())
	}
	return h
}

func (s *OutputSchema) Equals(rhs *OutputSchema) bool {
	if len(s.columns) != len(rhs.columns) {
		return false
	}
	for i, col := range s.columns {
		if !col.Equals(rhs.columns[i]) {
			return false
		}
	}
	return true
}

type outputSchemaJSON struct {
	Columns []*Column `json:"Columns"`
}

func (s *OutputSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(&outputSchemaJSON{s.columns})
}

func (s *OutputSchema) UnmarshalJSON(data []byte) error {
	var j outputSchemaJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	s.columns = j.Columns
	return nil
}

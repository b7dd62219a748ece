package types

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
)

type Value struct {
	integer   *int32
	boolean   *bool
	varchar   *string
	valueType TypeID
}

func NewInteger(value int32) Value {
	return Value{&value, nil, nil, Integer}
}

func NewBoolean(value bool) Value {
	return Value{nil, &value, nil, Boolean}
}

func NewVarchar(value string) Value {
	return Value{nil, nil, &value, Varchar}
}

func (v Value) ValueType() TypeID { return v.valueType }

func (v Value) ToInteger() int32 { return *v.integer }

func (v Value) ToBoolean() bool { return *v.boolean }

func (v Value) ToVarchar() string { return *v.varchar }

func (v Value) CompareEquals(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	switch v.valueType {
	case Integer:
		return *v.integer == *right.integer
	case Boolean:
		return *v.boolean == *right.boolean
	case Varchar:
		return *v.varchar == *right.varchar
	}
	return false
}

func (v Value) CompareNotEquals(right Value) bool {
	return !v.CompareEquals(right)
}

// Serialize casts the held value to []byte
func (v Value) Serialize() []byte {
	switch v.valueType {
	case Integer:
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, *v.integer)
		return buf.Bytes()
	case Boolean:
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, *v.boolean)
		return buf.Bytes()
	case Varchar:
		return []byte(*v.varchar)
	}
	return []byte{}
}

type valueJSON struct {
	ValueType TypeID  `json:"ValueType"`
	Integer   *int32  `json:"Integer,omitempty"`
	Boolean   *bool   `json:"Boolean,omitempty"`
	Varchar   *string `json:"Varchar,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(&valueJSON{v.valueType, v.integer, v.boolean, v.varchar})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var j valueJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	v.valueType = j.ValueType
	v.integer = j.Integer
	v.boolean = j.Boolean
	v.varchar = j.Varchar
	return nil
}

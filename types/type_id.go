package types

type TypeID int

const (
	Invalid TypeID = iota
	Boolean
	Tinyint
	Smallint
	Integer
	BigInt
	Decimal
	Varchar
	Timestamp
)

func (t TypeID) Size() uint32 {
	switch t {
	case Boolean, Tinyint:
		return 1
	case Smallint:
		return 2
	case Integer:
		return 4
	case BigInt, Decimal, Timestamp:
		return 8
	}
	return 0
}

package hash

import (
	"bytes"
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

func hashBytes(bytes []byte, length uint32) uint32 {
	// https://github.com/greenplum-db/gpos/blob/b53c1acd6285de94044ff91fbee91589543feba1/libgpos/src/utils.cpp#L126
	var hash uint32 = length
	for i := 0; i < int(length); i++ {
		hash = ((hash << 5) ^ (hash >> 27)) ^ uint32(bytes[i])
	}
	return hash
}

func CombineHashes(l uint32, r uint32) uint32 {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, l)
	binary.Write(buf, binary.LittleEndian, r)
	return hashBytes(buf.Bytes(), 4*2)
}

/** @return the hash of a uint32 value */
func HashUint32(val uint32) uint32 {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, val)
	return GenHashMurMur(buf.Bytes())
}

/** @return the hash of a uint64 value */
func HashUint64(val uint64) uint32 {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, val)
	return GenHashMurMur(buf.Bytes())
}

/** @return the hash of a string */
func HashString(val string) uint32 {
	return GenHashMurMur([]byte(val))
}

func GenHashMurMur(key []byte) uint32 {
	h := murmur3.New128()
	h.Write(key)

	hash := h.Sum(nil)

	return binary.LittleEndian.Uint32(hash)
}

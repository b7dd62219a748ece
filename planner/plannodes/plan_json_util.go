package plannodes

import (
	"bytes"
	"encoding/json"

	"github.com/kagerodb/KageroDB/container/hash"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/types"
)

var jsonNull = []byte("null")

func marshalExpr(e expression.Expression) (json.RawMessage, error) {
	if e == nil {
		return nil, nil
	}
	return e.ToJSON()
}

func marshalExprs(es []expression.Expression) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(es))
	for _, e := range es {
		data, err := e.ToJSON()
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func unmarshalExpr(data json.RawMessage) (expression.Expression, error) {
	if data == nil || bytes.Equal(data, jsonNull) {
		return nil, nil
	}
	return expression.DeserializeExpression(data)
}

func unmarshalExprs(datas []json.RawMessage) ([]expression.Expression, error) {
	out := make([]expression.Expression, 0, len(datas))
	for _, data := range datas {
		e, err := expression.DeserializeExpression(data)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func exprEquals(a expression.Expression, b expression.Expression) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return a.Equals(b)
}

func exprsEqual(a []expression.Expression, b []expression.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		if !e.Equals(b[i]) {
			return false
		}
	}
	return true
}

func combineExprHash(h uint32, e expression.Expression) uint32 {
	if e == nil {
		return h
	}
	return hash.CombineHashes(h, e.Hash())
}

func combineExprsHash(h uint32, es []expression.Expression) uint32 {
	h = hash.CombineHashes(h, hash.HashUint32(uint32(len(es))))
	for _, e := range es {
		h = hash.CombineHashes(h, e.Hash())
	}
	return h
}

func combineColumnOIDsHash(h uint32, oids []types.ColumnOID) uint32 {
	h = hash.CombineHashes(h, hash.HashUint32(uint32(len(oids))))
	for _, oid := range oids {
		h = hash.CombineHashes(h, hash.HashUint32(uint32(oid)))
	}
	return h
}

func columnOIDsEqual(a []types.ColumnOID, b []types.ColumnOID) bool {
	if len(a) != len(b) {
		return false
	}
	for i, oid := range a {
		if oid != b[i] {
			return false
		}
	}
	return true
}

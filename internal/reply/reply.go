// Package reply defines the typed reply tree every command produces.
// Each node knows how to serialize itself to RESP bytes; the connection
// handler never inspects a command's result beyond calling Serialize.
//
// Modeled on original_source/src/execution_result/reply.rs's single reply
// enum and on spec.md §9's design note: "model replies as an algebraic
// reply tree with one serialize entry point" rather than heterogeneous
// trait-object vectors.
package reply

import "github.com/icefiredb/redkv/pkg/resp"

// Node is any value the command layer can hand back to a connection for
// serialization.
type Node interface {
	Serialize() []byte
}

// SimpleString is the RESP '+' type: short, non-binary status text.
type SimpleString string

func (s SimpleString) Serialize() []byte {
	return resp.AppendString(nil, string(s))
}

// SimpleError is the RESP '-' type.
type SimpleError string

func (e SimpleError) Serialize() []byte {
	return resp.AppendError(nil, string(e))
}

// FromError wraps any error as a SimpleError reply.
func FromError(err error) SimpleError {
	return SimpleError(err.Error())
}

// Integer is the RESP ':' type, a signed 64-bit integer.
type Integer int64

func (i Integer) Serialize() []byte {
	return resp.AppendInt(nil, int64(i))
}

// BulkString is the RESP '$' type: a binary-safe, always-present payload.
// A key that might be absent should use Null instead of an empty BulkString.
type BulkString []byte

func (b BulkString) Serialize() []byte {
	return resp.AppendBulk(nil, []byte(b))
}

// BulkStringFrom is a convenience constructor from a Go string.
func BulkStringFrom(s string) BulkString {
	return BulkString(s)
}

// Null is the RESP3 '_' type: an absent value.
type Null struct{}

func (Null) Serialize() []byte {
	return resp.AppendNull(nil)
}

// Array is the RESP '*' type: an ordered sequence of child nodes.
type Array []Node

func (a Array) Serialize() []byte {
	out := resp.AppendArrayHeader(nil, len(a))
	for _, n := range a {
		out = append(out, n.Serialize()...)
	}
	return out
}

// BulkStrings builds an Array of BulkString nodes from raw byte slices.
func BulkStrings(values [][]byte) Array {
	out := make(Array, len(values))
	for i, v := range values {
		out[i] = BulkString(v)
	}
	return out
}

// BulkStringsFromText is BulkStrings for string inputs.
func BulkStringsFromText(values []string) Array {
	out := make(Array, len(values))
	for i, v := range values {
		out[i] = BulkStringFrom(v)
	}
	return out
}

// MapEntry is one key/value pair of a Map reply.
type MapEntry struct {
	Key   Node
	Value Node
}

// Map is the RESP3 '%' type: a sequence of key/value pairs.
type Map []MapEntry

func (m Map) Serialize() []byte {
	out := resp.AppendMapHeader(nil, len(m))
	for _, e := range m {
		out = append(out, e.Key.Serialize()...)
		out = append(out, e.Value.Serialize()...)
	}
	return out
}

// Package store implements the keyspace: a single mapping from string keys
// to tagged values, enforcing kind-checked access (I1), implicit creation on
// write (I2), and centralized implicit deletion when a container empties
// out (I3).
//
// A single mutex guards the whole map. The connection handler
// (redkv.Server.dispatch) acquires it once per command and holds it for the
// full Execute call — there is no
// per-key locking, matching the single-threaded event loop this keyspace
// was designed for.
package store

import (
	"container/list"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/store/sortedset"
	"github.com/icefiredb/redkv/internal/store/stream"
)

// Kind discriminates the six value kinds a key can hold.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindList
	KindSet
	KindHash
	KindSortedSet
	KindStream
)

// String renders the lower-case kind name used in the TYPE command's reply.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindHash:
		return "hash"
	case KindSortedSet:
		return "zset"
	case KindStream:
		return "stream"
	default:
		return "none"
	}
}

// entry is the tagged value stored at a key. Exactly one of the typed
// fields is meaningful, selected by kind.
type entry struct {
	kind   Kind
	str    string
	list   *list.List
	set    mapset.Set[string]
	hash   map[string]string
	zset   *sortedset.SortedSet
	stream *stream.Stream
}

// Keyspace is the server's sole mutable shared resource.
type Keyspace struct {
	mu   sync.Mutex
	data map[string]*entry
}

// New returns an empty keyspace.
func New() *Keyspace {
	return &Keyspace{data: make(map[string]*entry)}
}

// Lock acquires the command-execution lock. The caller must hold it for the
// full duration of a single command's dispatch.
func (ks *Keyspace) Lock() { ks.mu.Lock() }

// Unlock releases the lock acquired by Lock.
func (ks *Keyspace) Unlock() { ks.mu.Unlock() }

// Type reports the kind stored at key, or KindNone if it doesn't exist.
func (ks *Keyspace) Type(key string) Kind {
	e, ok := ks.data[key]
	if !ok {
		return KindNone
	}
	return e.kind
}

// Del removes key unconditionally. Reports whether it existed.
func (ks *Keyspace) Del(key string) bool {
	_, ok := ks.data[key]
	delete(ks.data, key)
	return ok
}

// DropIfEmpty removes key when size is zero, the centralized I3 check every
// mutating collection command runs after its operation.
func (ks *Keyspace) DropIfEmpty(key string, size int) {
	if size == 0 {
		delete(ks.data, key)
	}
}

// GetString returns the string at key. ok is false if key is absent; err is
// ErrWrongType if key holds a different kind.
func (ks *Keyspace) GetString(key string) (val string, ok bool, err error) {
	e, present := ks.data[key]
	if !present {
		return "", false, nil
	}
	if e.kind != KindString {
		return "", false, protoerr.ErrWrongType
	}
	return e.str, true, nil
}

// SetString stores val at key if key is absent or already a string.
// Returns ErrWrongType if key holds another kind.
func (ks *Keyspace) SetString(key, val string) error {
	if e, ok := ks.data[key]; ok && e.kind != KindString {
		return protoerr.ErrWrongType
	}
	ks.data[key] = &entry{kind: KindString, str: val}
	return nil
}

// SetStringOverwrite stores val at key regardless of what kind (if any) was
// there before. Used only by commands that destroy the prior type, e.g. SET
// and MSET.
func (ks *Keyspace) SetStringOverwrite(key, val string) {
	ks.data[key] = &entry{kind: KindString, str: val}
}

// GetList returns the list at key without creating it. A nil list with a
// nil error means key is absent.
func (ks *Keyspace) GetList(key string) (*list.List, error) {
	e, ok := ks.data[key]
	if !ok {
		return nil, nil
	}
	if e.kind != KindList {
		return nil, protoerr.ErrWrongType
	}
	return e.list, nil
}

// GetOrCreateList returns the list at key, creating an empty one if absent.
func (ks *Keyspace) GetOrCreateList(key string) (*list.List, error) {
	e, ok := ks.data[key]
	if !ok {
		l := list.New()
		ks.data[key] = &entry{kind: KindList, list: l}
		return l, nil
	}
	if e.kind != KindList {
		return nil, protoerr.ErrWrongType
	}
	return e.list, nil
}

// GetSet returns the set at key without creating it.
func (ks *Keyspace) GetSet(key string) (mapset.Set[string], error) {
	e, ok := ks.data[key]
	if !ok {
		return nil, nil
	}
	if e.kind != KindSet {
		return nil, protoerr.ErrWrongType
	}
	return e.set, nil
}

// GetOrCreateSet returns the set at key, creating an empty one if absent.
func (ks *Keyspace) GetOrCreateSet(key string) (mapset.Set[string], error) {
	e, ok := ks.data[key]
	if !ok {
		s := mapset.NewThreadUnsafeSet[string]()
		ks.data[key] = &entry{kind: KindSet, set: s}
		return s, nil
	}
	if e.kind != KindSet {
		return nil, protoerr.ErrWrongType
	}
	return e.set, nil
}

// GetHash returns the hash at key without creating it.
func (ks *Keyspace) GetHash(key string) (map[string]string, error) {
	e, ok := ks.data[key]
	if !ok {
		return nil, nil
	}
	if e.kind != KindHash {
		return nil, protoerr.ErrWrongType
	}
	return e.hash, nil
}

// GetOrCreateHash returns the hash at key, creating an empty one if absent.
func (ks *Keyspace) GetOrCreateHash(key string) (map[string]string, error) {
	e, ok := ks.data[key]
	if !ok {
		h := make(map[string]string)
		ks.data[key] = &entry{kind: KindHash, hash: h}
		return h, nil
	}
	if e.kind != KindHash {
		return nil, protoerr.ErrWrongType
	}
	return e.hash, nil
}

// GetSortedSet returns the sorted set at key without creating it.
func (ks *Keyspace) GetSortedSet(key string) (*sortedset.SortedSet, error) {
	e, ok := ks.data[key]
	if !ok {
		return nil, nil
	}
	if e.kind != KindSortedSet {
		return nil, protoerr.ErrWrongType
	}
	return e.zset, nil
}

// GetOrCreateSortedSet returns the sorted set at key, creating an empty one
// if absent.
func (ks *Keyspace) GetOrCreateSortedSet(key string) (*sortedset.SortedSet, error) {
	e, ok := ks.data[key]
	if !ok {
		z := sortedset.New()
		ks.data[key] = &entry{kind: KindSortedSet, zset: z}
		return z, nil
	}
	if e.kind != KindSortedSet {
		return nil, protoerr.ErrWrongType
	}
	return e.zset, nil
}

// GetStream returns the stream at key without creating it.
func (ks *Keyspace) GetStream(key string) (*stream.Stream, error) {
	e, ok := ks.data[key]
	if !ok {
		return nil, nil
	}
	if e.kind != KindStream {
		return nil, protoerr.ErrWrongType
	}
	return e.stream, nil
}

// GetOrCreateStream returns the stream at key, creating an empty one if
// absent.
func (ks *Keyspace) GetOrCreateStream(key string) (*stream.Stream, error) {
	e, ok := ks.data[key]
	if !ok {
		s := stream.New()
		ks.data[key] = &entry{kind: KindStream, stream: s}
		return s, nil
	}
	if e.kind != KindStream {
		return nil, protoerr.ErrWrongType
	}
	return e.stream, nil
}

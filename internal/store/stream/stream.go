package stream

import "github.com/icefiredb/redkv/internal/protoerr"

// Entry is one appended record: its assigned ID and field/value pairs in
// the order they were given to XADD.
type Entry struct {
	ID     ID
	Fields [][2]string
}

// Stream is an append-only log of Entry values, ordered by ID and indexed
// by a radix trie over each ID's big-endian bytes. The zero value's top ID
// is (0, 0), so the first auto-assigned ID is (0, 1).
type Stream struct {
	trie *trieNode
	top  ID
	n    int
}

// New returns an empty stream.
func New() *Stream {
	return &Stream{trie: newTrieNode()}
}

// Append assigns an ID to fields and inserts it. If explicit is nil, the ID
// is the successor of the current top ID. Otherwise explicit is used as
// given, and must be strictly greater than the current top ID. Returns the
// assigned ID.
func (s *Stream) Append(explicit *ID, fields [][2]string) (ID, error) {
	var id ID
	if explicit == nil {
		next, ok := s.top.next()
		if !ok {
			return ID{}, protoerr.ErrIdExhausted
		}
		id = next
	} else {
		id = *explicit
		if !s.top.Less(id) {
			return ID{}, protoerr.ErrIdNotGreaterThanStreamTop
		}
	}

	if !s.trie.insert(id, &Entry{ID: id, Fields: fields}) {
		return ID{}, protoerr.ErrInternalKeyExist
	}
	s.top = id
	s.n++
	return id, nil
}

// Len returns the number of entries in the stream.
func (s *Stream) Len() int {
	return s.n
}

// Top returns the current top ID (the ID of the most recently appended
// entry), or the zero ID if the stream is empty.
func (s *Stream) Top() ID {
	return s.top
}

// Entries returns every entry in ascending ID order.
func (s *Stream) Entries() []Entry {
	out := make([]Entry, 0, s.n)
	s.trie.walk(func(e *Entry) {
		out = append(out, *e)
	})
	return out
}

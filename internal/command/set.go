package command

import (
	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

type saddCmd struct {
	key     string
	members []string
}

func newSadd(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	members := make([]string, len(args)-1)
	for i, a := range args[1:] {
		members[i] = string(a)
	}
	return saddCmd{key: string(args[0]), members: members}, nil
}

func (c saddCmd) Execute(ks *store.Keyspace) reply.Node {
	s, err := ks.GetOrCreateSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	added := 0
	for _, m := range c.members {
		if s.Add(m) {
			added++
		}
	}
	return reply.Integer(int64(added))
}

type sremCmd struct {
	key     string
	members []string
}

func newSrem(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	members := make([]string, len(args)-1)
	for i, a := range args[1:] {
		members[i] = string(a)
	}
	return sremCmd{key: string(args[0]), members: members}, nil
}

func (c sremCmd) Execute(ks *store.Keyspace) reply.Node {
	s, err := ks.GetSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if s == nil {
		return reply.Integer(0)
	}
	removed := 0
	for _, m := range c.members {
		if s.Contains(m) {
			s.Remove(m)
			removed++
		}
	}
	ks.DropIfEmpty(c.key, s.Cardinality())
	return reply.Integer(int64(removed))
}

type smembersCmd struct {
	key string
}

func newSmembers(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return smembersCmd{key: string(args[0])}, nil
}

func (c smembersCmd) Execute(ks *store.Keyspace) reply.Node {
	s, err := ks.GetSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if s == nil {
		return reply.Array(nil)
	}
	return reply.BulkStringsFromText(s.ToSlice())
}

type sismemberCmd struct {
	key    string
	member string
}

func newSismember(args [][]byte) (Command, error) {
	if len(args) != 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return sismemberCmd{key: string(args[0]), member: string(args[1])}, nil
}

func (c sismemberCmd) Execute(ks *store.Keyspace) reply.Node {
	s, err := ks.GetSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if s == nil || !s.Contains(c.member) {
		return reply.Integer(0)
	}
	return reply.Integer(1)
}

type scardCmd struct {
	key string
}

func newScard(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return scardCmd{key: string(args[0])}, nil
}

func (c scardCmd) Execute(ks *store.Keyspace) reply.Node {
	s, err := ks.GetSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if s == nil {
		return reply.Integer(0)
	}
	return reply.Integer(int64(s.Cardinality()))
}

type sdiffCmd struct {
	keys []string
}

func newSdiff(args [][]byte) (Command, error) {
	if len(args) < 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	keys := make([]string, len(args))
	for i, a := range args {
		keys[i] = string(a)
	}
	return sdiffCmd{keys: keys}, nil
}

func (c sdiffCmd) Execute(ks *store.Keyspace) reply.Node {
	first, err := ks.GetSet(c.keys[0])
	if err != nil {
		return reply.FromError(err)
	}
	if first == nil {
		return reply.Array(nil)
	}
	result := first.Clone()
	for _, k := range c.keys[1:] {
		s, err := ks.GetSet(k)
		if err != nil {
			return reply.FromError(err)
		}
		if s == nil {
			continue
		}
		result = result.Difference(s)
	}
	return reply.BulkStringsFromText(result.ToSlice())
}

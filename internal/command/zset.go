package command

import (
	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

type zaddCmd struct {
	key   string
	pairs []zscoreMember
}

type zscoreMember struct {
	score  float64
	member string
}

func newZadd(args [][]byte) (Command, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	pairs := make([]zscoreMember, (len(args)-1)/2)
	for i := range pairs {
		score, err := parseFloat64(args[1+2*i])
		if err != nil {
			return nil, err
		}
		pairs[i] = zscoreMember{score: score, member: string(args[2+2*i])}
	}
	return zaddCmd{key: string(args[0]), pairs: pairs}, nil
}

func (c zaddCmd) Execute(ks *store.Keyspace) reply.Node {
	z, err := ks.GetOrCreateSortedSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	added := 0
	for _, p := range c.pairs {
		if z.Add(p.score, p.member) {
			added++
		}
	}
	return reply.Integer(int64(added))
}

type zrangeCmd struct {
	key         string
	start, stop int64
}

func newZrange(args [][]byte) (Command, error) {
	if len(args) != 3 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	start, err := parseInt64(args[1])
	if err != nil {
		return nil, err
	}
	stop, err := parseInt64(args[2])
	if err != nil {
		return nil, err
	}
	return zrangeCmd{key: string(args[0]), start: start, stop: stop}, nil
}

func (c zrangeCmd) Execute(ks *store.Keyspace) reply.Node {
	z, err := ks.GetSortedSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if z == nil {
		return reply.Array(nil)
	}
	n := int64(z.Len())
	start, stop := normalizeRange(c.start, c.stop, n)
	if start > stop {
		return reply.Array(nil)
	}
	return reply.BulkStringsFromText(z.RangeByRank(int(start), int(stop)))
}

type zremCmd struct {
	key     string
	members []string
}

func newZrem(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	members := make([]string, len(args)-1)
	for i, a := range args[1:] {
		members[i] = string(a)
	}
	return zremCmd{key: string(args[0]), members: members}, nil
}

func (c zremCmd) Execute(ks *store.Keyspace) reply.Node {
	z, err := ks.GetSortedSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if z == nil {
		return reply.Integer(0)
	}
	removed := 0
	for _, m := range c.members {
		if z.Remove(m) {
			removed++
		}
	}
	ks.DropIfEmpty(c.key, z.Len())
	return reply.Integer(int64(removed))
}

type zrankCmd struct {
	key    string
	member string
}

func newZrank(args [][]byte) (Command, error) {
	if len(args) != 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return zrankCmd{key: string(args[0]), member: string(args[1])}, nil
}

func (c zrankCmd) Execute(ks *store.Keyspace) reply.Node {
	z, err := ks.GetSortedSet(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if z == nil {
		return reply.Null{}
	}
	rank, ok := z.Rank(c.member)
	if !ok {
		return reply.Null{}
	}
	return reply.Integer(int64(rank))
}

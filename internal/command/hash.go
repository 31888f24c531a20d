package command

import (
	"strconv"

	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

type hsetCmd struct {
	key   string
	pairs [][2]string
}

func newHset(args [][]byte) (Command, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	pairs := make([][2]string, (len(args)-1)/2)
	for i := range pairs {
		pairs[i] = [2]string{string(args[1+2*i]), string(args[2+2*i])}
	}
	return hsetCmd{key: string(args[0]), pairs: pairs}, nil
}

func (c hsetCmd) Execute(ks *store.Keyspace) reply.Node {
	h, err := ks.GetOrCreateHash(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	added := 0
	for _, p := range c.pairs {
		if _, exists := h[p[0]]; !exists {
			added++
		}
		h[p[0]] = p[1]
	}
	return reply.Integer(int64(added))
}

type hgetCmd struct {
	key, field string
}

func newHget(args [][]byte) (Command, error) {
	if len(args) != 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return hgetCmd{key: string(args[0]), field: string(args[1])}, nil
}

func (c hgetCmd) Execute(ks *store.Keyspace) reply.Node {
	h, err := ks.GetHash(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if h == nil {
		return reply.Null{}
	}
	v, ok := h[c.field]
	if !ok {
		return reply.Null{}
	}
	return reply.BulkStringFrom(v)
}

type hgetallCmd struct {
	key string
}

func newHgetall(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return hgetallCmd{key: string(args[0])}, nil
}

func (c hgetallCmd) Execute(ks *store.Keyspace) reply.Node {
	h, err := ks.GetHash(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if h == nil {
		return reply.Array(nil)
	}
	out := make(reply.Array, 0, len(h)*2)
	for f, v := range h {
		out = append(out, reply.BulkStringFrom(f), reply.BulkStringFrom(v))
	}
	return out
}

type hincrbyCmd struct {
	key, field string
	n          int64
}

func newHincrby(args [][]byte) (Command, error) {
	if len(args) != 3 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	n, err := parseInt64(args[2])
	if err != nil {
		return nil, err
	}
	return hincrbyCmd{key: string(args[0]), field: string(args[1]), n: n}, nil
}

func (c hincrbyCmd) Execute(ks *store.Keyspace) reply.Node {
	h, err := ks.GetOrCreateHash(c.key)
	if err != nil {
		return reply.FromError(err)
	}

	var cur int64
	if v, ok := h[c.field]; ok {
		cur, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return reply.FromError(protoerr.ErrInvalidHashValue)
		}
	}

	sum, overflowed := addWithOverflowCheck(cur, c.n)
	if overflowed {
		return reply.FromError(protoerr.ErrResultOverflow)
	}

	h[c.field] = strconv.FormatInt(sum, 10)
	return reply.Integer(sum)
}

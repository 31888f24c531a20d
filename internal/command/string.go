package command

import (
	"math"
	"strconv"

	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

type setCmd struct {
	key, val string
}

func newSet(args [][]byte) (Command, error) {
	if len(args) != 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return setCmd{key: string(args[0]), val: string(args[1])}, nil
}

func (c setCmd) Execute(ks *store.Keyspace) reply.Node {
	ks.SetStringOverwrite(c.key, c.val)
	return reply.SimpleString("OK")
}

type getCmd struct {
	key string
}

func newGet(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return getCmd{key: string(args[0])}, nil
}

func (c getCmd) Execute(ks *store.Keyspace) reply.Node {
	val, ok, err := ks.GetString(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if !ok {
		return reply.Null{}
	}
	return reply.BulkStringFrom(val)
}

type mgetCmd struct {
	keys []string
}

func newMget(args [][]byte) (Command, error) {
	if len(args) == 0 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	keys := make([]string, len(args))
	for i, a := range args {
		keys[i] = string(a)
	}
	return mgetCmd{keys: keys}, nil
}

func (c mgetCmd) Execute(ks *store.Keyspace) reply.Node {
	out := make(reply.Array, len(c.keys))
	for i, k := range c.keys {
		val, ok, err := ks.GetString(k)
		if err != nil {
			return reply.FromError(err)
		}
		if !ok {
			out[i] = reply.Null{}
			continue
		}
		out[i] = reply.BulkStringFrom(val)
	}
	return out
}

type msetCmd struct {
	pairs [][2]string
}

func newMset(args [][]byte) (Command, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	pairs := make([][2]string, len(args)/2)
	for i := range pairs {
		pairs[i] = [2]string{string(args[2*i]), string(args[2*i+1])}
	}
	return msetCmd{pairs: pairs}, nil
}

func (c msetCmd) Execute(ks *store.Keyspace) reply.Node {
	for _, p := range c.pairs {
		ks.SetStringOverwrite(p[0], p[1])
	}
	return reply.SimpleString("OK")
}

// incrDecrCmd implements INCR/DECR: add delta (±1) to the integer stored at
// key, treating a missing key as "0".
type incrDecrCmd struct {
	key   string
	delta int64
}

func newIncrDecr(args [][]byte, delta int64) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return incrDecrCmd{key: string(args[0]), delta: delta}, nil
}

func (c incrDecrCmd) Execute(ks *store.Keyspace) reply.Node {
	return applyDelta(ks, c.key, c.delta)
}

// incrDecrByCmd implements INCRBY/DECRBY: n is a request-parsed argument;
// DECRBY negates n first, which itself can overflow for n = math.MinInt64.
type incrDecrByCmd struct {
	key string
	n   int64
	neg bool
}

func newIncrDecrBy(args [][]byte, sign int64) (Command, error) {
	if len(args) != 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	n, err := parseInt64(args[1])
	if err != nil {
		return nil, err
	}
	return incrDecrByCmd{key: string(args[0]), n: n, neg: sign < 0}, nil
}

func (c incrDecrByCmd) Execute(ks *store.Keyspace) reply.Node {
	delta := c.n
	if c.neg {
		if delta == math.MinInt64 {
			return reply.FromError(protoerr.ErrInvalidIntValue)
		}
		delta = -delta
	}
	return applyDelta(ks, c.key, delta)
}

// applyDelta is the shared INCR/DECR/INCRBY/DECRBY core: parse the current
// value (missing treated as "0"), add delta with overflow checking, store
// the decimal result on success.
func applyDelta(ks *store.Keyspace, key string, delta int64) reply.Node {
	cur, ok, err := ks.GetString(key)
	if err != nil {
		return reply.FromError(err)
	}
	var curVal int64
	if ok {
		curVal, err = strconv.ParseInt(cur, 10, 64)
		if err != nil {
			return reply.FromError(protoerr.ErrInvalidValue)
		}
	}

	sum, overflowed := addWithOverflowCheck(curVal, delta)
	if overflowed {
		return reply.FromError(protoerr.ErrResultOverflow)
	}

	ks.SetStringOverwrite(key, strconv.FormatInt(sum, 10))
	return reply.Integer(sum)
}

func addWithOverflowCheck(a, b int64) (sum int64, overflowed bool) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, true
	}
	return sum, false
}

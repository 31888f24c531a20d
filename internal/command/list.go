package command

import (
	"container/list"

	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

// pushCmd implements LPUSH/RPUSH: each value is inserted at the given end,
// in argument order, so LPUSH k a b c leaves the list c,b,a front-to-back.
type pushCmd struct {
	key    string
	values []string
	at     end
}

func newPush(args [][]byte, at end) (Command, error) {
	if len(args) < 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	values := make([]string, len(args)-1)
	for i, a := range args[1:] {
		values[i] = string(a)
	}
	return pushCmd{key: string(args[0]), values: values, at: at}, nil
}

func (c pushCmd) Execute(ks *store.Keyspace) reply.Node {
	l, err := ks.GetOrCreateList(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	for _, v := range c.values {
		if c.at == front {
			l.PushFront(v)
		} else {
			l.PushBack(v)
		}
	}
	return reply.Integer(int64(l.Len()))
}

// popCmd implements LPOP/RPOP, with or without an explicit count.
type popCmd struct {
	key      string
	at       end
	count    int
	hasCount bool
}

func newPop(args [][]byte, at end) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	c := popCmd{key: string(args[0]), at: at}
	if len(args) == 2 {
		n, err := parseUint(args[1])
		if err != nil {
			return nil, err
		}
		c.count = n
		c.hasCount = true
	}
	return c, nil
}

func (c popCmd) Execute(ks *store.Keyspace) reply.Node {
	l, err := ks.GetList(c.key)
	if err != nil {
		return reply.FromError(err)
	}

	if !c.hasCount {
		if l == nil || l.Len() == 0 {
			return reply.Null{}
		}
		v := popOne(l, c.at)
		ks.DropIfEmpty(c.key, l.Len())
		return reply.SimpleString(v)
	}

	if l == nil {
		return reply.Array(nil)
	}
	n := c.count
	if n > l.Len() {
		n = l.Len()
	}
	out := make(reply.Array, n)
	for i := 0; i < n; i++ {
		out[i] = reply.BulkStringFrom(popOne(l, c.at))
	}
	ks.DropIfEmpty(c.key, l.Len())
	return out
}

func popOne(l *list.List, at end) string {
	var e *list.Element
	if at == front {
		e = l.Front()
	} else {
		e = l.Back()
	}
	l.Remove(e)
	return e.Value.(string)
}

type llenCmd struct {
	key string
}

func newLlen(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return llenCmd{key: string(args[0])}, nil
}

func (c llenCmd) Execute(ks *store.Keyspace) reply.Node {
	l, err := ks.GetList(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if l == nil {
		return reply.Integer(0)
	}
	return reply.Integer(int64(l.Len()))
}

type lrangeCmd struct {
	key         string
	start, stop int64
}

func newLrange(args [][]byte) (Command, error) {
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
	return lrangeCmd{key: string(args[0]), start: start, stop: stop}, nil
}

func (c lrangeCmd) Execute(ks *store.Keyspace) reply.Node {
	l, err := ks.GetList(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	if l == nil {
		return reply.Array(nil)
	}

	n := int64(l.Len())
	start, stop := normalizeRange(c.start, c.stop, n)
	if start > stop {
		return reply.Array(nil)
	}

	out := make(reply.Array, 0, stop-start+1)
	var i int64
	for e := l.Front(); e != nil; e = e.Next() {
		if i > stop {
			break
		}
		if i >= start {
			out = append(out, reply.BulkStringFrom(e.Value.(string)))
		}
		i++
	}
	return out
}

// normalizeRange converts possibly-negative, possibly-out-of-bounds indices
// into a clamped [0, n-1] window, per spec.md §4.4.
func normalizeRange(start, stop, n int64) (int64, int64) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop > n-1 {
		stop = n - 1
	}
	return start, stop
}

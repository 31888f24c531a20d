package command

import (
	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

// pingCmd replies PONG, matching canonical Redis (spec.md §9 resolves the
// PONG-vs-OK open question in favor of PONG).
type pingCmd struct{}

func newPing(args [][]byte) (Command, error) {
	if len(args) != 0 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return pingCmd{}, nil
}

func (pingCmd) Execute(*store.Keyspace) reply.Node {
	return reply.SimpleString("PONG")
}

// configGetCmd is the minimal no-op CONFIG GET handshake some clients issue
// on connect; it always replies an empty Map (spec.md §6 supplemented
// feature).
type configGetCmd struct{}

func newConfigGet(args [][]byte) (Command, error) {
	if len(args) == 0 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return configGetCmd{}, nil
}

func (configGetCmd) Execute(*store.Keyspace) reply.Node {
	return reply.Map(nil)
}

// delCmd removes a key unconditionally; a no-op on a missing key (spec.md
// §9 open question: DEL is supplemented, typed as a no-op on absence).
type delCmd struct {
	key string
}

func newDel(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return delCmd{key: string(args[0])}, nil
}

func (c delCmd) Execute(ks *store.Keyspace) reply.Node {
	if ks.Del(c.key) {
		return reply.Integer(1)
	}
	return reply.Integer(0)
}

// typeCmd reports the kind stored at a key (spec.md §6 supplemented
// feature), reusing store.Kind's String() for the reply text.
type typeCmd struct {
	key string
}

func newType(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	return typeCmd{key: string(args[0])}, nil
}

func (c typeCmd) Execute(ks *store.Keyspace) reply.Node {
	return reply.SimpleString(ks.Type(c.key).String())
}

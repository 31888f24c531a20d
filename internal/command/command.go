// Package command turns a parsed token vector into a concrete command and
// runs it against the keyspace. Commands are modeled as a tagged variant
// routed by New, per spec.md §9's design note and
// original_source/src/command/mod.rs's factory/execute split: each
// command's constructor validates arity and parses typed arguments before
// any state change, and Execute returns a single reply.Node or error.
package command

import (
	"strings"

	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
)

// Command is a parsed, arity-checked request ready to run against a
// keyspace. Implementations must not mutate the keyspace before New
// returns successfully (spec.md §9's atomicity note: validate-then-mutate).
type Command interface {
	Execute(ks *store.Keyspace) reply.Node
}

// New parses args (the full command line, args[0] the command name) into a
// Command. Only args[0] is case-folded; every other token is passed through
// untouched, since keys and values are binary-safe.
func New(args [][]byte) (Command, error) {
	if len(args) == 0 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	name := strings.ToLower(string(args[0]))
	rest := args[1:]

	switch name {
	case "ping":
		return newPing(rest)
	case "config":
		return newConfigGet(rest)
	case "del":
		return newDel(rest)
	case "type":
		return newType(rest)

	case "set":
		return newSet(rest)
	case "get":
		return newGet(rest)
	case "mget":
		return newMget(rest)
	case "mset":
		return newMset(rest)
	case "incr":
		return newIncrDecr(rest, 1)
	case "decr":
		return newIncrDecr(rest, -1)
	case "incrby":
		return newIncrDecrBy(rest, 1)
	case "decrby":
		return newIncrDecrBy(rest, -1)

	case "lpush":
		return newPush(rest, front)
	case "rpush":
		return newPush(rest, back)
	case "lpop":
		return newPop(rest, front)
	case "rpop":
		return newPop(rest, back)
	case "llen":
		return newLlen(rest)
	case "lrange":
		return newLrange(rest)

	case "sadd":
		return newSadd(rest)
	case "srem":
		return newSrem(rest)
	case "smembers":
		return newSmembers(rest)
	case "sismember":
		return newSismember(rest)
	case "scard":
		return newScard(rest)
	case "sdiff":
		return newSdiff(rest)

	case "hset":
		return newHset(rest)
	case "hget":
		return newHget(rest)
	case "hgetall":
		return newHgetall(rest)
	case "hincrby":
		return newHincrby(rest)

	case "zadd":
		return newZadd(rest)
	case "zrange":
		return newZrange(rest)
	case "zrem":
		return newZrem(rest)
	case "zrank":
		return newZrank(rest)

	case "xadd":
		return newXadd(rest)

	default:
		return nil, protoerr.ErrUnsupportedCommand(string(args[0]))
	}
}

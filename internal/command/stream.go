package command

import (
	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
	"github.com/icefiredb/redkv/internal/store/stream"
)

// xaddCmd implements XADD k <* | hi lo> field value [field value]...
// "*" requests an auto-assigned ID (one token); otherwise the ID is given
// as two explicit tokens, hi then lo.
type xaddCmd struct {
	key    string
	id     *stream.ID
	fields [][2]string
}

func newXadd(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	key := string(args[0])

	var id *stream.ID
	rest := args[1:]
	if string(rest[0]) != "*" {
		if len(rest) < 2 {
			return nil, protoerr.ErrIncorrectArgCount
		}
		hi, err := parseUint64(rest[0])
		if err != nil {
			return nil, err
		}
		lo, err := parseUint64(rest[1])
		if err != nil {
			return nil, err
		}
		id = &stream.ID{Hi: hi, Lo: lo}
		rest = rest[2:]
	} else {
		rest = rest[1:]
	}

	if len(rest) < 2 || len(rest)%2 != 0 {
		return nil, protoerr.ErrIncorrectArgCount
	}
	fields := make([][2]string, len(rest)/2)
	for i := range fields {
		fields[i] = [2]string{string(rest[2*i]), string(rest[2*i+1])}
	}

	return xaddCmd{key: key, id: id, fields: fields}, nil
}

func (c xaddCmd) Execute(ks *store.Keyspace) reply.Node {
	s, err := ks.GetOrCreateStream(c.key)
	if err != nil {
		return reply.FromError(err)
	}
	id, err := s.Append(c.id, c.fields)
	if err != nil {
		return reply.FromError(err)
	}
	return reply.SimpleString(id.String())
}

func parseUint64(b []byte) (uint64, error) {
	n, err := parseInt64(b)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, protoerr.ErrInvalidNegValue
	}
	return uint64(n), nil
}

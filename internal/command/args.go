package command

import (
	"strconv"

	"github.com/icefiredb/redkv/internal/protoerr"
)

// end marks which side of a list an LPUSH/RPUSH/LPOP/RPOP operates on.
type end int

const (
	front end = iota
	back
)

func parseInt64(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, protoerr.ErrInvalidIntValue
	}
	return n, nil
}

func parseFloat64(b []byte) (float64, error) {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, protoerr.ErrInvalidFloatValue
	}
	return f, nil
}

// parseUint parses a non-negative count, e.g. LPOP's optional count.
func parseUint(b []byte) (int, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, protoerr.ErrInvalidIntValue
	}
	if n < 0 {
		return 0, protoerr.ErrInvalidNegValue
	}
	return int(n), nil
}

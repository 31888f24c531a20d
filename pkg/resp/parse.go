package resp

import "github.com/icefiredb/redkv/internal/protoerr"

// Command is one parsed request: an Array of BulkStrings, the only frame
// shape this server accepts on the wire.
type Command struct {
	// Raw is the encoded RESP message the command was parsed from.
	Raw []byte
	// Args is the command's tokens. Args[0] is the command name.
	Args [][]byte
}

func parseInt(b []byte) (int, bool) {
	if len(b) == 1 && b[0] >= '0' && b[0] <= '9' {
		return int(b[0] - '0'), true
	}
	var n int
	var sign bool
	var i int
	if len(b) > 0 && b[0] == '-' {
		sign = true
		i++
	}
	if i == len(b) {
		return 0, false
	}
	for ; i < len(b); i++ {
		if b[i] < '0' || b[i] > '9' {
			return 0, false
		}
		n = n*10 + int(b[i]-'0')
	}
	if sign {
		n *= -1
	}
	return n, true
}

// ReadCommands parses as many complete commands as buf holds and returns
// any trailing bytes that belong to a not-yet-complete command. Only the
// RESP Array-of-BulkString grammar is accepted; anything else is a
// *protoerr.ParseRequestFailed, which callers must treat as fatal to the
// connection (spec.md §4.1, §7).
func ReadCommands(buf []byte) ([]Command, []byte, error) {
	var cmds []Command
	b := buf
	for len(b) > 0 {
		if b[0] != '*' {
			return cmds, b, &protoerr.ParseRequestFailed{
				Stage: protoerr.StageArrayHeader,
				Cause: "expected '*', got '" + string(b[0]) + "'",
			}
		}

		marks := make([]int, 0, 16)
		var i int
		var count int
		var complete bool

	outer:
		for i = 1; i < len(b); i++ {
			if b[i] != '\n' {
				continue
			}
			if b[i-1] != '\r' {
				return cmds, b, &protoerr.ParseRequestFailed{
					Stage: protoerr.StageArrayHeader,
					Cause: "missing CRLF",
				}
			}
			var ok bool
			count, ok = parseInt(b[1 : i-1])
			if !ok || count <= 0 {
				return cmds, b, &protoerr.ParseRequestFailed{
					Stage: protoerr.StageArrayHeader,
					Cause: "invalid multibulk length",
				}
			}
			for j := 0; j < count; j++ {
				i++
				if i >= len(b) {
					break outer
				}
				if b[i] != '$' {
					return cmds, b, &protoerr.ParseRequestFailed{
						Stage: protoerr.StageBulkHeader,
						Cause: "expected '$', got '" + string(b[i]) + "'",
					}
				}
				si := i
				var gotLen bool
				for ; i < len(b); i++ {
					if b[i] != '\n' {
						continue
					}
					if b[i-1] != '\r' {
						return cmds, b, &protoerr.ParseRequestFailed{
							Stage: protoerr.StageBulkHeader,
							Cause: "missing CRLF",
						}
					}
					size, ok := parseInt(b[si+1 : i-1])
					if !ok || size < 0 {
						return cmds, b, &protoerr.ParseRequestFailed{
							Stage: protoerr.StageBulkHeader,
							Cause: "invalid bulk length",
						}
					}
					if i+size+2 >= len(b) {
						break outer
					}
					if b[i+size+1] != '\r' || b[i+size+2] != '\n' {
						return cmds, b, &protoerr.ParseRequestFailed{
							Stage: protoerr.StageBulkPayload,
							Cause: "malformed bulk terminator",
						}
					}
					i++
					marks = append(marks, i, i+size)
					i += size + 1
					gotLen = true
					break
				}
				if !gotLen {
					break outer
				}
			}
			if len(marks) == count*2 {
				complete = true
			}
			break
		}

		if !complete {
			return cmds, b, nil
		}

		cmd := Command{Raw: b[:i+1]}
		cmd.Args = make([][]byte, len(marks)/2)
		for h := 0; h < len(marks); h += 2 {
			cmd.Args[h/2] = cmd.Raw[marks[h]:marks[h+1]]
		}
		cmds = append(cmds, cmd)
		b = b[i+1:]
	}
	return cmds, nil, nil
}

package resp

import (
	"testing"

	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCommandsSingle(t *testing.T) {
	in := []byte("*2\r\n$3\r\nGET\r\n$3\r\nkey\r\n")
	cmds, rest, err := ReadCommands(in)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Nil(t, rest)
	assert.Equal(t, [][]byte{[]byte("GET"), []byte("key")}, cmds[0].Args)
	assert.Equal(t, in, cmds[0].Raw)
}

func TestReadCommandsPipelined(t *testing.T) {
	in := []byte("*1\r\n$4\r\nPING\r\n*1\r\n$4\r\nPING\r\n")
	cmds, rest, err := ReadCommands(in)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Nil(t, rest)
	for _, c := range cmds {
		assert.Equal(t, [][]byte{[]byte("PING")}, c.Args)
	}
}

func TestReadCommandsIncompleteArrayHeader(t *testing.T) {
	in := []byte("*2\r\n$3\r\nGET")
	cmds, rest, err := ReadCommands(in)
	require.NoError(t, err)
	assert.Nil(t, cmds)
	assert.Equal(t, in, rest)
}

func TestReadCommandsIncompleteBulkPayload(t *testing.T) {
	in := []byte("*1\r\n$5\r\nhel")
	cmds, rest, err := ReadCommands(in)
	require.NoError(t, err)
	assert.Nil(t, cmds)
	assert.Equal(t, in, rest)
}

func TestReadCommandsSplitAcrossBuffers(t *testing.T) {
	first := []byte("*2\r\n$3\r\nGET\r\n$3\r\nke")
	cmds, rest, err := ReadCommands(first)
	require.NoError(t, err)
	assert.Nil(t, cmds)
	require.NotNil(t, rest)

	full := append(rest, []byte("y\r\n")...)
	cmds, rest, err = ReadCommands(full)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Nil(t, rest)
	assert.Equal(t, [][]byte{[]byte("GET"), []byte("key")}, cmds[0].Args)
}

func TestReadCommandsRejectsNonArray(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"telnet-style text", []byte("GET key\r\n")},
		{"tile38 native", []byte("$7 set key\r\n")},
		{"inline newline", []byte("\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadCommands(tt.in)
			require.Error(t, err)
			var perr *protoerr.ParseRequestFailed
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, protoerr.StageArrayHeader, perr.Stage)
		})
	}
}

func TestReadCommandsRejectsBadMultibulkLength(t *testing.T) {
	_, _, err := ReadCommands([]byte("*x\r\n"))
	require.Error(t, err)
	var perr *protoerr.ParseRequestFailed
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protoerr.StageArrayHeader, perr.Stage)
}

func TestReadCommandsRejectsMissingBulkMarker(t *testing.T) {
	_, _, err := ReadCommands([]byte("*1\r\n:3\r\n"))
	require.Error(t, err)
	var perr *protoerr.ParseRequestFailed
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protoerr.StageBulkHeader, perr.Stage)
}

func TestReadCommandsRejectsBadBulkTerminator(t *testing.T) {
	_, _, err := ReadCommands([]byte("*1\r\n$3\r\nabcXX"))
	require.Error(t, err)
	var perr *protoerr.ParseRequestFailed
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protoerr.StageBulkPayload, perr.Stage)
}

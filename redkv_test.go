package redkv

import (
	"net"
	"testing"

	"github.com/icefiredb/redkv/internal/store"
	"github.com/panjf2000/gnet/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockConn struct {
	gnet.Conn
	closed  bool
	written []byte
	buf     []byte
	ctx     interface{}
}

func (m *mockConn) Write(buf []byte) (n int, err error) {
	m.written = append(m.written, buf...)
	return len(buf), nil
}

func (m *mockConn) Writev(bufs [][]byte) (n int, err error) {
	for _, buf := range bufs {
		m.written = append(m.written, buf...)
		n += len(buf)
	}
	return n, nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockConn) Next(n int) (buf []byte, err error) {
	if len(m.buf) == 0 {
		return nil, nil
	}
	if n == -1 || n > len(m.buf) {
		buf = make([]byte, len(m.buf))
		copy(buf, m.buf)
		m.buf = nil
		return buf, nil
	}
	buf = make([]byte, n)
	copy(buf, m.buf[:n])
	m.buf = m.buf[n:]
	return buf, nil
}

func (m *mockConn) AsyncWrite(buf []byte, callback gnet.AsyncCallback) error {
	m.written = append(m.written, buf...)
	return nil
}

func (m *mockConn) Context() interface{}     { return m.ctx }
func (m *mockConn) SetContext(v interface{}) { m.ctx = v }
func (m *mockConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 6379}
}

func TestNewServer(t *testing.T) {
	s := New(store.New(), nil)
	assert.NotNil(t, s)
	assert.NotNil(t, s.conns)
}

func TestOnOpenTracksConnection(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{}

	out, action := s.OnOpen(mock)
	assert.Nil(t, out)
	assert.Equal(t, gnet.None, action)

	s.connMu.RLock()
	_, ok := s.conns[mock]
	s.connMu.RUnlock()
	assert.True(t, ok)
}

func TestOnCloseForgetsConnection(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{}
	s.OnOpen(mock)

	action := s.OnClose(mock, nil)
	assert.Equal(t, gnet.None, action)

	s.connMu.RLock()
	_, ok := s.conns[mock]
	s.connMu.RUnlock()
	assert.False(t, ok)
}

func TestOnCloseMidFrameLogsWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(store.New(), zap.New(core))
	mock := &mockConn{buf: []byte("*2\r\n$3\r\nGET\r\n$1\r\n")}
	s.OnOpen(mock)
	s.OnTraffic(mock)

	s.connMu.RLock()
	cs := s.conns[mock]
	s.connMu.RUnlock()
	require.Greater(t, cs.buf.Len(), 0)

	action := s.OnClose(mock, nil)
	assert.Equal(t, gnet.None, action)

	entries := logs.All()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, zapcore.WarnLevel, last.Level)
	assert.Contains(t, last.Message, "mid-frame")
}

func TestOnCloseBoundaryLogsDebugNotWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(store.New(), zap.New(core))
	mock := &mockConn{}
	s.OnOpen(mock)

	action := s.OnClose(mock, nil)
	assert.Equal(t, gnet.None, action)

	entries := logs.All()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, zapcore.DebugLevel, last.Level)
	assert.NotContains(t, last.Message, "mid-frame")
}

func TestOnTrafficPingRepliesPong(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{buf: []byte("*1\r\n$4\r\nPING\r\n")}
	s.OnOpen(mock)

	action := s.OnTraffic(mock)
	assert.Equal(t, gnet.None, action)
	assert.Equal(t, "+PONG\r\n", string(mock.written))
}

func TestOnTrafficSetThenGet(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{buf: []byte("*3\r\n$3\r\nSET\r\n$1\r\nx\r\n$3\r\nfoo\r\n")}
	s.OnOpen(mock)

	s.OnTraffic(mock)
	assert.Equal(t, "+OK\r\n", string(mock.written))

	mock.buf = []byte("*2\r\n$3\r\nGET\r\n$1\r\nx\r\n")
	mock.written = nil
	s.OnTraffic(mock)
	assert.Equal(t, "$3\r\nfoo\r\n", string(mock.written))
}

func TestOnTrafficMultipleCommandsInOneRead(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{buf: []byte(
		"*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n" +
			"*2\r\n$3\r\nGET\r\n$1\r\nk\r\n",
	)}
	s.OnOpen(mock)

	action := s.OnTraffic(mock)
	assert.Equal(t, gnet.None, action)
	assert.Equal(t, "+OK\r\n$1\r\nv\r\n", string(mock.written))
}

func TestOnTrafficIncompleteCommandIsBuffered(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{buf: []byte("*2\r\n$3\r\nGET\r\n$1\r\n")}
	s.OnOpen(mock)

	action := s.OnTraffic(mock)
	assert.Equal(t, gnet.None, action)
	assert.Empty(t, mock.written)

	s.connMu.RLock()
	cs := s.conns[mock]
	s.connMu.RUnlock()
	require.NotNil(t, cs)
	assert.Greater(t, cs.buf.Len(), 0)

	mock.buf = []byte("x\r\n")
	s.OnTraffic(mock)
	assert.Equal(t, "_\r\n", string(mock.written))
}

func TestOnTrafficMalformedFrameClosesConnection(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{buf: []byte("not-resp-at-all\r\n")}
	s.OnOpen(mock)

	action := s.OnTraffic(mock)
	assert.Equal(t, gnet.Close, action)
	assert.Contains(t, string(mock.written), "ERR")
}

func TestOnTrafficEmptyReadIsNoOp(t *testing.T) {
	s := New(store.New(), nil)
	mock := &mockConn{buf: []byte{}}
	s.OnOpen(mock)

	action := s.OnTraffic(mock)
	assert.Equal(t, gnet.None, action)
	assert.Empty(t, mock.written)
}

func TestCloseNotRunning(t *testing.T) {
	s := New(store.New(), nil)
	err := s.Close()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server not running")
}

func TestOnBootAndTick(t *testing.T) {
	s := New(store.New(), nil)
	assert.Equal(t, gnet.None, s.OnBoot(gnet.Engine{}))
	delay, action := s.OnTick()
	assert.Equal(t, int64(0), int64(delay))
	assert.Equal(t, gnet.None, action)
	s.OnShutdown(gnet.Engine{})
}

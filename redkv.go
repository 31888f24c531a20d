// Package redkv implements an in-memory, RESP-compatible key/value server.
// It keeps the event-driven architecture of its gnet-based ancestor: one or
// more event loops multiplex connections, each connection accumulates bytes
// until full commands can be framed, and every frame is dispatched, executed
// against a single shared keyspace, and replied to in order.
//
// Unlike a generic RESP framework, Server already knows the full command
// surface (internal/command) and the single keyspace every connection
// shares (internal/store); there is no separate handler callback to wire up.
package redkv

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/gnet/v2"
	"go.uber.org/zap"

	"github.com/icefiredb/redkv/internal/command"
	"github.com/icefiredb/redkv/internal/protoerr"
	"github.com/icefiredb/redkv/internal/reply"
	"github.com/icefiredb/redkv/internal/store"
	"github.com/icefiredb/redkv/pkg/resp"
)

// Action mirrors gnet.Action for the subset this server uses.
type Action = gnet.Action

// Options configures a Server's event loop. Field meanings and defaults
// follow the gnet options they forward to.
type Options struct {
	Multicore    bool
	NumEventLoop int
	ReusePort    bool
}

// connState is the per-connection accumulation buffer plus a stable ID used
// to correlate log lines for that connection.
type connState struct {
	id  uuid.UUID
	buf bytes.Buffer
}

// Server is the gnet.EventHandler that frames RESP requests, dispatches
// them through internal/command, and serializes the resulting reply.
type Server struct {
	ks  *store.Keyspace
	log *zap.Logger

	connMu sync.RWMutex
	conns  map[gnet.Conn]*connState

	mu      sync.Mutex
	addr    string
	running bool
	engine  gnet.Engine
}

// New returns a Server backed by ks, logging through log. If log is nil, a
// no-op logger is used.
func New(ks *store.Keyspace, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		ks:    ks,
		log:   log,
		conns: make(map[gnet.Conn]*connState),
	}
}

func (s *Server) OnBoot(eng gnet.Engine) gnet.Action {
	s.mu.Lock()
	s.engine = eng
	s.mu.Unlock()
	s.log.Info("server booted", zap.String("addr", s.addr))
	return gnet.None
}

func (s *Server) OnShutdown(gnet.Engine) {
	s.log.Info("server shutting down")
}

func (s *Server) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	cs := &connState{id: uuid.New()}
	s.connMu.Lock()
	s.conns[c] = cs
	s.connMu.Unlock()
	s.log.Debug("connection opened",
		zap.String("conn_id", cs.id.String()),
		zap.String("remote_addr", c.RemoteAddr().String()))
	return nil, gnet.None
}

// OnClose classifies the close independently of gnet's own err: a peer FIN
// is nil-err regardless of whether this connection still had an unconsumed
// partial frame buffered, so the mid-frame-vs-boundary distinction has to
// come from cs.buf, not err.
func (s *Server) OnClose(c gnet.Conn, err error) gnet.Action {
	s.connMu.Lock()
	cs, ok := s.conns[c]
	delete(s.conns, c)
	s.connMu.Unlock()

	connID := "unknown"
	midFrame := false
	if ok {
		connID = cs.id.String()
		midFrame = cs.buf.Len() > 0
	}

	switch {
	case err != nil:
		s.log.Warn("connection closed with error", zap.String("conn_id", connID), zap.Error(err))
	case midFrame:
		s.log.Warn("connection closed mid-frame, partial command discarded", zap.String("conn_id", connID))
	default:
		s.log.Debug("connection closed", zap.String("conn_id", connID))
	}
	return gnet.None
}

// OnTraffic reads everything available, frames as many complete commands as
// possible, executes each against the shared keyspace under its single
// lock, and writes replies back in request order. A framing error is fatal
// to the connection (spec's RESP-only contract: malformed input cannot be
// resynchronized).
func (s *Server) OnTraffic(c gnet.Conn) gnet.Action {
	s.connMu.RLock()
	cs, ok := s.conns[c]
	s.connMu.RUnlock()
	if !ok {
		return gnet.Close
	}

	data, _ := c.Next(-1)
	if len(data) == 0 {
		return gnet.None
	}
	cs.buf.Write(data)

	cmds, rest, err := resp.ReadCommands(cs.buf.Bytes())
	cs.buf.Reset()
	if rest != nil {
		cs.buf.Write(rest)
	}

	var out []byte
	for _, cmd := range cmds {
		out = append(out, s.dispatch(cmd)...)
	}

	if err != nil {
		var parseErr *protoerr.ParseRequestFailed
		if errors.As(err, &parseErr) {
			s.log.Warn("framing error, closing connection",
				zap.String("conn_id", cs.id.String()),
				zap.String("stage", string(parseErr.Stage)),
				zap.String("cause", parseErr.Cause))
		}
		out = append(out, reply.FromError(err).Serialize()...)
		if len(out) > 0 {
			_, _ = c.Write(out)
		}
		return gnet.Close
	}

	if len(out) > 0 {
		_, _ = c.Write(out)
	}
	return gnet.None
}

// dispatch parses and executes a single framed command under the keyspace
// lock, holding it for exactly the duration of execute (spec's concurrency
// model: commands are serialized with respect to the keyspace).
func (s *Server) dispatch(cmd resp.Command) []byte {
	built, err := command.New(cmd.Args)
	if err != nil {
		return reply.FromError(err).Serialize()
	}

	s.ks.Lock()
	result := built.Execute(s.ks)
	s.ks.Unlock()

	return result.Serialize()
}

func (s *Server) OnTick() (time.Duration, gnet.Action) {
	return 0, gnet.None
}

// ListenAndServe starts s on addr (e.g. "tcp://127.0.0.1:6379") and blocks
// until the engine stops or an error occurs.
func ListenAndServe(addr string, options Options, s *Server) error {
	var opts []gnet.Option
	if options.Multicore {
		opts = append(opts, gnet.WithMulticore(true))
	}
	if options.NumEventLoop > 0 {
		opts = append(opts, gnet.WithNumEventLoop(options.NumEventLoop))
	}
	if options.ReusePort {
		opts = append(opts, gnet.WithReusePort(true))
	}

	s.mu.Lock()
	s.addr = addr
	s.running = true
	s.mu.Unlock()

	err := gnet.Run(s, addr, opts...)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return err
}

// Close gracefully shuts down the server. Safe to call once the server is
// running; returns an error if it isn't.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}
	s.running = false
	return s.engine.Stop(context.Background())
}

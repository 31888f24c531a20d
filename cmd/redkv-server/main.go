// Command redkv-server runs a standalone redkv instance.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/icefiredb/redkv"
	"github.com/icefiredb/redkv/internal/store"
)

func main() {
	var (
		network      string
		addr         string
		multicore    bool
		reusePort    bool
		numEventLoop int
	)

	flag.StringVar(&network, "network", "tcp", "server network")
	flag.StringVar(&addr, "addr", "127.0.0.1:6379", "server address")
	flag.BoolVar(&multicore, "multicore", true, "enable multicore support")
	flag.BoolVar(&reusePort, "reusePort", false, "enable SO_REUSEPORT")
	flag.IntVar(&numEventLoop, "numEventLoop", 0, "number of event loops (0 = runtime.NumCPU())")
	flag.Parse()

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "redkv: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ks := store.New()
	srv := redkv.New(ks, logger)
	protoAddr := fmt.Sprintf("%s://%s", network, addr)

	var g errgroup.Group
	g.Go(func() error {
		return redkv.ListenAndServe(protoAddr, redkv.Options{
			Multicore:    multicore,
			ReusePort:    reusePort,
			NumEventLoop: numEventLoop,
		}, srv)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	g.Go(func() error {
		<-sig
		logger.Info("shutdown signal received")
		return srv.Close()
	})

	logger.Info("redkv listening", zap.String("addr", protoAddr))
	if err := g.Wait(); err != nil {
		logger.Error("redkv exited with error", zap.Error(err))
		os.Exit(1)
	}
}

// newLogger builds a zap logger whose level is read once from
// REDKV_LOG_LEVEL (defaulting to info), matching spec's "respect a log
// level environment variable consulted once at startup".
func newLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := os.Getenv("REDKV_LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid REDKV_LOG_LEVEL %q: %w", raw, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

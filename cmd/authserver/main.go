// Command authserver starts the zero-knowledge authentication gRPC
// service described by the specification: SignUp, Commit and
// Authenticate over the Chaum-Pedersen protocol, backed by an
// in-memory session store.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/chaumpedersen/zkpauth/authservice"
	"github.com/chaumpedersen/zkpauth/internal/config"
	"github.com/chaumpedersen/zkpauth/internal/logging"
	"github.com/chaumpedersen/zkpauth/session"
	"github.com/chaumpedersen/zkpauth/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New("zkp-auth-server")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	store := session.New()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.VerifierTTL > 0 {
		go store.Sweep(ctx, cfg.VerifierTTL, time.Minute)
	}

	svc := authservice.New(store, log)
	grpcServer := grpc.NewServer()
	transport.Register(grpcServer, transport.NewServer(svc, log))

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.ListenAddr, err)
	}

	log.Info("starting zkp auth server", zap.String("address", cfg.ListenAddr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Package servertest provides utilities for testing the passphrase service.
package servertest

import (
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"go.akshayshah.org/attest"

	"github.com/sts10/phraze/internal/client"
	"github.com/sts10/phraze/internal/server"
)

// NewServer starts a passphrase service on an ephemeral port and returns
// ready-to-use clients. The clients and server are automatically cleaned up
// when the test completes.
func NewServer(tb testing.TB, cfg server.Config, numClients int) []*client.Client {
	tb.Helper()
	attest.True(tb, numClients > 0, attest.Sprintf("num clients must be positive"))

	addr := Start(tb, cfg)
	logger := NewLogger(tb)
	clients := make([]*client.Client, numClients)
	for i := range clients {
		client, err := client.New(addr)
		attest.Ok(tb, err, attest.Sprint("client dial"))
		tb.Cleanup(func() {
			// A client that sent QUIT has nothing left to close.
			_ = client.Close()
		})
		for {
			if err := client.Ping(); err == nil {
				break
			}
			backoff := 100 * time.Millisecond
			logger.Debug("redcon server not ready", "addr", addr, "retry_after", backoff)
			time.Sleep(backoff)
		}
		clients[i] = client
	}
	return clients
}

// Start runs a passphrase service on an ephemeral port until the test
// completes and returns its address.
func Start(tb testing.TB, cfg server.Config) net.Addr {
	tb.Helper()
	logger := NewLogger(tb)
	srv := server.New(cfg, logger)

	ln, err := net.Listen("tcp", "localhost:0") // closed by redcon server
	attest.Ok(tb, err, attest.Sprint("listen on ephemeral port"))

	var wg sync.WaitGroup
	logger.Debug("starting redcon server", "addr", ln.Addr())
	wg.Go(func() {
		attest.Ok(tb, srv.ServeTCP(ln), attest.Sprint("redcon serve"))
	})
	tb.Cleanup(func() {
		attest.Ok(tb, srv.Close(), attest.Sprint("redcon close"))
		wg.Wait()
	})
	return ln.Addr()
}

// NewLogger creates a structured logger that writes to the supplied
// testing.TB.
func NewLogger(tb testing.TB) *slog.Logger {
	handler := slog.NewTextHandler(tb.Output(), &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	})
	return slog.New(handler)
}

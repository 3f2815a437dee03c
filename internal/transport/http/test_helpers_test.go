package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Harrybandukda/gochat-server/internal/auth"
	"github.com/Harrybandukda/gochat-server/internal/config"
	"github.com/Harrybandukda/gochat-server/internal/core"
	"github.com/Harrybandukda/gochat-server/internal/store"
	"github.com/Harrybandukda/gochat-server/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store with the schema applied.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// startTestServer wires a full server (REST + websocket) around the given store.
func startTestServer(t *testing.T, st store.Store) (*stdhttp.Server, *httptest.Server) {
	t.Helper()

	hub := core.NewHub(st, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	disabledLogger := zerolog.Nop()

	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		MaxMessageBytes:   1 << 20,
	}

	server := NewServer(hub, auth.NewService(st), st, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(cancel)
	t.Cleanup(ts.Close)

	return server, ts
}

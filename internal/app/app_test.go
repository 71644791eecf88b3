package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/caffeinepub/food-order-delivery-platform/internal/config"
	testhelpers "github.com/caffeinepub/food-order-delivery-platform/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func stubListen(t *testing.T, fn func(network, addr string) (net.Listener, error)) {
	t.Helper()
	original := listen
	listen = fn
	t.Cleanup(func() { listen = original })
}

func newLifecycle(server *http.Server) (*testhelpers.LifecycleRecorder, *testhelpers.ShutdownerStub) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})
	return recorder, shutdowner
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router, Logger: discardLogger()})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
	if server.ReadHeaderTimeout != readHeaderTimeout || server.IdleTimeout != idleTimeout {
		t.Fatalf("unexpected timeouts %s %s", server.ReadHeaderTimeout, server.IdleTimeout)
	}
	if server.ErrorLog == nil {
		t.Fatal("expected server errors to be routed to slog")
	}
}

func TestRegisterLifecycleServesUntilStopped(t *testing.T) {
	var addr string
	stubListen(t, func(network, address string) (net.Listener, error) {
		ln, err := net.Listen(network, "127.0.0.1:0")
		if err == nil {
			addr = ln.Addr().String()
		}
		return ln, err
	})

	server := &http.Server{Addr: ":0", Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}
	recorder, _ := newLifecycle(server)
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	done := make(chan error, 1)
	go func() { done <- recorder.Stop(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("stop failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected stop to finish")
	}

	if _, err := http.Get("http://" + addr + "/"); err == nil {
		t.Fatal("expected server to refuse connections after stop")
	}
}

func TestRegisterLifecycleListenError(t *testing.T) {
	recorder, shutdowner := newLifecycle(&http.Server{Addr: "bad addr"})

	err := recorder.Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "listen on bad addr") {
		t.Fatalf("expected listen error, got %v", err)
	}
	select {
	case <-shutdowner.Called:
		t.Fatal("shutdown must not be requested when start fails")
	default:
	}
}

func TestRegisterLifecycleShutdownOnServeError(t *testing.T) {
	stubListen(t, func(network, address string) (net.Listener, error) {
		ln, err := net.Listen(network, "127.0.0.1:0")
		if err != nil {
			return nil, err
		}
		_ = ln.Close()
		return ln, nil
	})
	recorder, shutdowner := newLifecycle(&http.Server{Addr: ":0"})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = recorder.Stop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

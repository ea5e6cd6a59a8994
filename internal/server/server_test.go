package server_test

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/internal/server"
	"github.com/JaimeStill/stock-navigator/pkg/lifecycle"
)

func serverConfig(t *testing.T) *config.ServerConfig {
	t.Helper()
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 1}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	cfg.Port = 0
	return cfg
}

func TestServer_StartAndShutdown(t *testing.T) {
	lc := lifecycle.New()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	srv := server.New(serverConfig(t), 5*time.Second, handler, slog.New(slog.DiscardHandler))
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestServer_StartBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	cfg := serverConfig(t)
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	srv := server.New(cfg, time.Second, http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start() on a bound port error = nil, want error")
	}
}

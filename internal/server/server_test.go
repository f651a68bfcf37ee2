package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() Options {
	return Options{
		Port:            0,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestServer_Addr(t *testing.T) {
	opts := testOptions()
	opts.Port = 8080
	s := New(http.NotFoundHandler(), opts, testLogger())

	if s.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", s.Addr())
	}
}

func TestServer_ShutdownOrderIsLIFO(t *testing.T) {
	s := New(http.NotFoundHandler(), testOptions(), testLogger())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		s.OnShutdown(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := s.gracefulShutdown(); err != nil {
		t.Fatalf("gracefulShutdown() error = %v", err)
	}

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestServer_ShutdownErrorsAreReturned(t *testing.T) {
	s := New(http.NotFoundHandler(), testOptions(), testLogger())

	errBoom := errors.New("boom")
	called := false
	s.OnShutdown("failing", func(ctx context.Context) error { return errBoom })
	s.OnShutdown("healthy", func(ctx context.Context) error {
		called = true
		return nil
	})

	err := s.gracefulShutdown()
	if !errors.Is(err, errBoom) {
		t.Errorf("gracefulShutdown() error = %v, want %v", err, errBoom)
	}
	if err != nil && err.Error() != "stop failing: boom" {
		t.Errorf("gracefulShutdown() error = %q, want the component named", err)
	}
	if !called {
		t.Error("expected remaining components to shut down after an error")
	}
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	s := New(http.NotFoundHandler(), testOptions(), testLogger())

	stopped := make(chan struct{})
	s.OnShutdown("component", func(ctx context.Context) error {
		close(stopped)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	select {
	case <-stopped:
	default:
		t.Error("shutdown hook was not called")
	}
}

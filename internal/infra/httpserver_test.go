package infra

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPServerStretchesWriteTimeout(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want time.Duration
	}{
		{
			name: "configured timeout is long enough",
			cfg:  Config{Port: "8080", HTTPWriteTimeout: 120 * time.Second, RecipeTimeout: 60 * time.Second},
			want: 120 * time.Second,
		},
		{
			name: "recipe timeout dominates",
			cfg:  Config{Port: "8080", HTTPWriteTimeout: 10 * time.Second, RecipeTimeout: 60 * time.Second},
			want: 65 * time.Second,
		},
		{
			name: "search timeout dominates",
			cfg:  Config{Port: "8080", HTTPWriteTimeout: 10 * time.Second, RecipeTimeout: 20 * time.Second, SearchTimeout: 90 * time.Second},
			want: 95 * time.Second,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := NewHTTPServer(&tc.cfg, http.NotFoundHandler())
			if got := srv.WriteTimeout(); got != tc.want {
				t.Fatalf("WriteTimeout() = %v, want %v", got, tc.want)
			}
			if srv.Addr() != ":8080" {
				t.Fatalf("Addr() = %q", srv.Addr())
			}
		})
	}
}

func TestHTTPServerRunStopsOnCancel(t *testing.T) {
	srv := NewHTTPServer(&Config{Port: "0", HTTPWriteTimeout: time.Second}, http.NotFoundHandler())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

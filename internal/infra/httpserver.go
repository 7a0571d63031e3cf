package infra

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// minEnrichmentWriteWindow is how much longer than the recipe timeout a
// response may take to write.
const minEnrichmentWriteWindow = 5 * time.Second

// HTTPServer runs the API until its context is cancelled.
type HTTPServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewHTTPServer stretches the write timeout to cover the recipe model, the
// slowest enrichment branch.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	writeTimeout := cfg.HTTPWriteTimeout
	if floor := cfg.RecipeTimeout + minEnrichmentWriteWindow; cfg.RecipeTimeout > 0 && writeTimeout < floor {
		writeTimeout = floor
	}
	if cfg.SearchTimeout > 0 && writeTimeout < cfg.SearchTimeout+minEnrichmentWriteWindow {
		writeTimeout = cfg.SearchTimeout + minEnrichmentWriteWindow
	}
	return &HTTPServer{
		server: &http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.HTTPReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       cfg.HTTPIdleTimeout,
		},
		shutdownTimeout: writeTimeout,
	}
}

func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

func (s *HTTPServer) WriteTimeout() time.Duration {
	return s.server.WriteTimeout
}

// Run serves until ctx is done, then lets in-flight searches finish for up to
// one write timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

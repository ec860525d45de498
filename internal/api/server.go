package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spcloud/urlship/internal/ports"
)

// Route paths served by Server.
const (
	PathPresignedURLs = "/presigned-urls"
	PathDeviceLink    = "/device-link"
)

// Server exposes handlers over net/http.
type Server struct {
	logger         ports.Logger
	requestTimeout time.Duration
	mux            *http.ServeMux
	server         *http.Server
}

// NewServer creates a server. requestTimeout bounds each handler call; zero
// disables the bound.
func NewServer(logger ports.Logger, requestTimeout time.Duration) *Server {
	s := &Server{
		logger:         logger,
		requestTimeout: requestTimeout,
		mux:            http.NewServeMux(),
	}
	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout(requestTimeout),
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// writeTimeout leaves room to write the response after the handler deadline.
// Without a handler deadline the write is not bounded either.
func writeTimeout(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		return 0
	}
	return requestTimeout + 10*time.Second
}

// Route registers h at path. OPTIONS preflight is answered automatically.
func (s *Server) Route(path string, h Handler) {
	s.mux.Handle(path, s.wrap(WithPreflight(h)))
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", ports.String("address", listener.Addr().String()))
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) wrap(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
			defer cancel()
		}

		query := make(map[string]string, len(r.URL.Query()))
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}

		start := time.Now()
		resp := h.Handle(ctx, Request{
			Method:    r.Method,
			Query:     query,
			RequestID: uuid.NewString(),
		})
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.WriteString(w, resp.Body)

		s.logger.Debug("http request",
			ports.String("method", r.Method),
			ports.String("path", r.URL.Path),
			ports.Int("status", resp.StatusCode),
			ports.Duration("duration", time.Since(start)),
		)
	})
}

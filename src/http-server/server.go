// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/metrics"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/logger"
)

// Route paths.
const (
	PromptsPath  = "/api/v1/prompts"
	promptPrefix = PromptsPath + "/"
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
)

// Server is the HTTP front end over a [dispatch.Dispatcher].
type Server struct {
	dispatcher *dispatch.Dispatcher
	log        logger.Logger
	mux        *http.ServeMux
}

// New returns a Server answering from d. A nil log discards messages.
func New(d *dispatch.Dispatcher, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewStructuredLogger(nil, "", true)
	}
	s := &Server{dispatcher: d, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET "+PromptsPath, s.handleList)
	s.mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	s.mux.Handle("GET "+MetricsPath, metrics.Handler())
	return s
}

// Handler returns the full handler chain: metrics, panic recovery, routing.
func (s *Server) Handler() http.Handler {
	return metrics.Middleware(s.recoverer(http.HandlerFunc(s.route)))
}

// route sends prompt lookups to handlePrompt before the mux sees them.
// ServeMux cleans paths and would redirect "/api/v1/prompts/../x" elsewhere.
func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	suffix, ok := cutPromptPrefix(r.URL.EscapedPath())
	if !ok {
		s.mux.ServeHTTP(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	s.handlePrompt(w, suffix)
}

// headerWriter records whether the wrapped handler has started its response.
type headerWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (hw *headerWriter) WriteHeader(code int) {
	hw.wroteHeader = true
	hw.ResponseWriter.WriteHeader(code)
}

func (hw *headerWriter) Write(b []byte) (int, error) {
	hw.wroteHeader = true
	return hw.ResponseWriter.Write(b)
}

func (hw *headerWriter) Unwrap() http.ResponseWriter { return hw.ResponseWriter }

// recoverer turns a handler panic into a 500 detail response. A panic after the
// response has started is only logged; the partial response stands.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &headerWriter{ResponseWriter: w}
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.log.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, v)
				if hw.wroteHeader {
					return
				}
				writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", v))
			}
		}()
		next.ServeHTTP(hw, r)
	})
}

// NewHTTPServer returns an [http.Server] for addr with the read-header timeout applied.
func NewHTTPServer(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Serve listens on srv.Addr and serves until ctx is canceled.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return ServeListener(ctx, srv, ln, shutdownTimeout)
}

// ServeListener serves on ln until ctx is canceled, then shuts down gracefully
// within shutdownTimeout. A clean shutdown returns nil.
func ServeListener(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

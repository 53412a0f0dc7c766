// Package server is the HTTP surface of the dashboard: full page loads,
// the JSON update endpoint the browser calls on every input change, and a
// CSV export of the filtered data.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"housing-dashboard/dashboard"
	"housing-dashboard/models"
	"housing-dashboard/utils"
)

var templates = template.Must(template.New("server").Parse(tmplBase + tmplClient + tmplError))

// Server serves one loaded table.
type Server struct {
	table        *models.Table
	ctrl         *dashboard.Controller
	defaultTheme models.Theme
	logger       *utils.Logger
	mux          *http.ServeMux
}

// New builds a Server and registers its routes.
func New(table *models.Table, ctrl *dashboard.Controller, defaultTheme models.Theme, logger *utils.Logger) *Server {
	s := &Server{
		table:        table,
		ctrl:         ctrl,
		defaultTheme: models.ParseTheme(string(defaultTheme), models.ThemeDark),
		logger:       logger,
		mux:          http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/update", s.handleUpdate)
	s.mux.HandleFunc("/export.csv", s.handleExport)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/", s.handlePage)
	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Listening on %s", ln.Addr())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("[server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	<-errc
	return nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Zap().Error("template error", zap.String("template", name), zap.Error(err))
	}
}

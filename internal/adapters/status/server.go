// Package status expone el estado del poll driver por HTTP.
package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// Snapshot is the document served by GET /status.
type Snapshot struct {
	StartedAt           time.Time      `json:"started_at"`
	Iterations          int            `json:"iterations"`
	ConsecutiveFailures int            `json:"consecutive_failures"`
	LastSuccessAt       *time.Time     `json:"last_success_at"`
	LastErrorAt         *time.Time     `json:"last_error_at"`
	LastError           *string        `json:"last_error"`
	LastReport          *domain.Report `json:"last_report"`
}

// Server implementa ports.Notifier: cada iteración del poll driver actualiza
// el snapshot que sirven los handlers.
type Server struct {
	addr   string
	engine *gin.Engine

	mu    sync.RWMutex
	state Snapshot
}

// New crea el servidor. El router se construye aquí; Start lo pone a escuchar.
func New(addr string, now time.Time) *Server {
	s := &Server{
		addr:  addr,
		state: Snapshot{StartedAt: now.UTC()},
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", s.handleHealth)
	r.GET("/status", s.handleStatus)
	s.engine = r
	return s
}

// Handler devuelve el router (tests).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start escucha en addr hasta que ctx se cancele y luego hace shutdown ordenado.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("status server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status.Start: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("status.Start: shutdown: %w", err)
		}
		return nil
	}
}

// Notify registra un run correcto.
func (s *Server) Notify(_ context.Context, report domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := report.CheckedAt
	s.state.Iterations++
	s.state.ConsecutiveFailures = 0
	s.state.LastSuccessAt = &at
	s.state.LastReport = &report
	return nil
}

// NotifyError registra un run fallido. El último reporte correcto se conserva.
func (s *Server) NotifyError(_ context.Context, checkedAt time.Time, runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := runErr.Error()
	s.state.Iterations++
	s.state.ConsecutiveFailures++
	s.state.LastErrorAt = &checkedAt
	s.state.LastError = &msg
	return nil
}

// Snapshot devuelve una copia del estado actual.
func (s *Server) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.Snapshot())
}

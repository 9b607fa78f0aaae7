package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"horizonx-probe/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	log logger.Logger
	srv *http.Server
}

func NewServer(handler http.Handler, addr string, log logger.Logger) *Server {
	return &Server{
		log: log,
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Serve uses ln and shuts down gracefully once ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http: starting server", "address", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("http: server shutdown error", "error", err)
			return err
		}
		s.log.Info("http: server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

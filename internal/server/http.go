package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"dose-response/internal/network"
	"dose-response/internal/version"
	"dose-response/pkg/api"
	"dose-response/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Server — отладочный сервер наблюдателя. Читает только то, что опубликовала симуляция,
// и никогда не обращается к миру напрямую.
type Server struct {
	Hub  *network.Broadcaster
	Addr string
	log  *logrus.Entry
}

func New(hub *network.Broadcaster, addr string) *Server {
	return &Server{
		Hub:  hub,
		Addr: addr,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "server",
			"addr":      addr,
		}),
	}
}

// Routes собирает роутер.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/ws", s.handleWS)

	NewDebugHandler(s.Hub).RegisterRoutes(r)
	return r
}

// Run слушает Addr, пока не отменён ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Debug server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("Debug server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleWS подключает наблюдателя по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Upgrade error")
		return
	}

	client := NewClient(s.Hub, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	info := version.Info()
	writeJSON(w, http.StatusOK, api.VersionInfo{
		FormatVersion: info.Version,
		Build:         version.Identifier(),
		Date:          info.BuildDate,
		Branch:        info.Branch,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithField("component", "server").WithError(err).Debug("write json response failed")
	}
}

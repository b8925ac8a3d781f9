package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dose-response/internal/network"
	"dose-response/pkg/api"
)

// DebugHandler отдаёт последние опубликованные данные сессии.
type DebugHandler struct {
	Hub *network.Broadcaster
}

func NewDebugHandler(hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r chi.Router) {
	r.Route("/debug", func(r chi.Router) {
		r.Get("/verification", h.handleVerification)
		r.Get("/chunks", h.handleChunks)
		r.Get("/snapshot", h.handleSnapshot)
	})
}

// /debug/verification - последний снимок проверки
func (h *DebugHandler) handleVerification(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.Hub.Latest()
	if !ok || msg.Verification == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot published yet"})
		return
	}
	writeJSON(w, http.StatusOK, msg.Verification)
}

// /debug/chunks - созданные чанки и их резидентность
func (h *DebugHandler) handleChunks(w http.ResponseWriter, r *http.Request) {
	chunks := h.Hub.Chunks()
	// Пустой список отдаём как [], а не null
	if chunks == nil {
		chunks = []api.ChunkView{}
	}
	writeJSON(w, http.StatusOK, chunks)
}

// /debug/snapshot - последний снимок целиком
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.Hub.Latest()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot published yet"})
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

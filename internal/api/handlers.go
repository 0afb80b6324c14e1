package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jvgaigals/gemini-tts-server/config"
	"github.com/jvgaigals/gemini-tts-server/internal/assets"
	"github.com/jvgaigals/gemini-tts-server/internal/logger"
	"github.com/jvgaigals/gemini-tts-server/internal/synth"
	"github.com/jvgaigals/gemini-tts-server/internal/usage"
)

// Inbound JSON bodies are capped at 2MB.
const maxBodyBytes = 2 << 20

// AudioPathPrefix is where persisted WAV assets are served from.
const AudioPathPrefix = "/audio/"

type Handler struct {
	gateway      *synth.Gateway
	assets       *assets.Store
	usage        *usage.Service
	defaultModel string
	defaultVoice string
	vapiSecret   string
	started      time.Time
	logger       *logger.Log
}

func NewHandler(gateway *synth.Gateway, store *assets.Store, usageService *usage.Service, cfg *config.Config) *Handler {
	return &Handler{
		gateway:      gateway,
		assets:       store,
		usage:        usageService,
		defaultModel: cfg.Gemini.Model,
		defaultVoice: cfg.Gemini.Voice,
		vapiSecret:   cfg.Vapi.Secret,
		started:      time.Now(),
		logger:       logger.New(),
	}
}

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/tts", h.Synthesize).Methods("POST")
	r.HandleFunc("/tts-url", h.SynthesizeURL).Methods("POST")
	r.HandleFunc("/batch-url", h.BatchSynthesizeURL).Methods("POST")
	r.HandleFunc("/vapi-tts", h.VapiWebhook).Methods("POST")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/stats", h.Stats).Methods("GET")
}

// GET /health - Liveness probe with the active defaults
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":     true,
		"uptime": time.Since(h.started).Round(time.Second).String(),
		"model":  h.defaultModel,
		"voice":  h.defaultVoice,
	})
}

// GET /stats - Aggregated synthesis usage
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.usage.Stats()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load stats", err.Error())
		return
	}
	byModel, err := h.usage.ByModel()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load stats", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"totals": stats,
		"models": byModel,
	})
}

// decode reads a JSON body into dst, enforcing the size cap.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]interface{}{"error": msg}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}

// baseURL reconstructs the externally visible scheme and host, honoring
// reverse-proxy forwarded headers.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if v := r.Header.Get("X-Forwarded-Proto"); v != "" {
		scheme = v
	}
	host := r.Host
	if v := r.Header.Get("X-Forwarded-Host"); v != "" {
		host = v
	}
	return scheme + "://" + host
}

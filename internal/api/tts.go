package api

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/jvgaigals/gemini-tts-server/internal/audio"
	"github.com/jvgaigals/gemini-tts-server/internal/synth"
)

type synthesizeRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Model  string `json:"model"`
	Return string `json:"return"` // "base64" for a JSON envelope instead of raw bytes
}

type batchRequest struct {
	Items []batchItem `json:"items"`
}

type batchItem struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Model string `json:"model"`
}

type vapiRequest struct {
	Message vapiMessage `json:"message"`
}

type vapiMessage struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	SampleRate int    `json:"sampleRate"`
}

// withDefaults fills in the server defaults for omitted voice/model.
func (h *Handler) withDefaults(text, voice, model string) synth.Request {
	if voice == "" {
		voice = h.defaultVoice
	}
	if model == "" {
		model = h.defaultModel
	}
	return synth.Request{Text: text, Voice: voice, Model: model}
}

// writeSynthesisError maps gateway errors onto HTTP statuses.
func (h *Handler) writeSynthesisError(w http.ResponseWriter, err error) {
	if errors.Is(err, synth.ErrEmptyText) {
		h.writeError(w, http.StatusBadRequest, "Text is required", "")
		return
	}
	var ue *synth.UpstreamError
	if errors.As(err, &ue) {
		h.logger.WithError(ue).Error("synthesis failed")
		h.writeError(w, http.StatusInternalServerError, "Synthesis failed", ue.Error())
		return
	}
	h.writeError(w, http.StatusInternalServerError, "Synthesis failed", err.Error())
}

// POST /tts - Synthesize speech and return the audio directly
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !h.decode(w, r, &req) {
		return
	}

	sreq := h.withDefaults(req.Text, req.Voice, req.Model)
	wav, err := h.gateway.Synthesize(r.Context(), sreq, true)
	if err != nil {
		h.writeSynthesisError(w, err)
		return
	}

	if req.Return == "base64" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"audio":      base64.StdEncoding.EncodeToString(wav),
			"mimeType":   "audio/wav",
			"sampleRate": audio.DefaultSampleRate,
			"channels":   audio.DefaultChannels,
			"model":      sreq.Model,
			"voice":      sreq.Voice,
		})
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(wav)
}

// POST /tts-url - Synthesize speech, persist it and return a public URL
func (h *Handler) SynthesizeURL(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !h.decode(w, r, &req) {
		return
	}

	sreq := h.withDefaults(req.Text, req.Voice, req.Model)
	wav, err := h.gateway.Synthesize(r.Context(), sreq, true)
	if err != nil {
		h.writeSynthesisError(w, err)
		return
	}

	name, err := h.assets.Put(wav)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to store audio", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.urlResult(r, sreq, name))
}

// POST /batch-url - Synthesize multiple items concurrently, preserving order
func (h *Handler) BatchSynthesizeURL(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "items must be a non-empty list", "")
		return
	}

	// All items fan out at once; one item failing never aborts its siblings.
	results := make([]map[string]interface{}, len(req.Items))
	var wg sync.WaitGroup
	for i, item := range req.Items {
		wg.Add(1)
		go func(i int, item batchItem) {
			defer wg.Done()
			results[i] = h.synthesizeToURL(r, h.withDefaults(item.Text, item.Voice, item.Model))
		}(i, item)
	}
	wg.Wait()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
}

// synthesizeToURL runs one synthesis and persists the WAV, returning either a
// success object or {error: message}.
func (h *Handler) synthesizeToURL(r *http.Request, sreq synth.Request) map[string]interface{} {
	wav, err := h.gateway.Synthesize(r.Context(), sreq, true)
	if err != nil {
		if errors.Is(err, synth.ErrEmptyText) {
			return map[string]interface{}{"error": "Text is required"}
		}
		return map[string]interface{}{"error": err.Error()}
	}

	name, err := h.assets.Put(wav)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	return h.urlResult(r, sreq, name)
}

func (h *Handler) urlResult(r *http.Request, sreq synth.Request, name string) map[string]interface{} {
	return map[string]interface{}{
		"url":        baseURL(r) + AudioPathPrefix + name,
		"sampleRate": audio.DefaultSampleRate,
		"channels":   audio.DefaultChannels,
		"model":      sreq.Model,
		"voice":      sreq.Voice,
	}
}

// POST /vapi-tts - Voice webhook returning raw PCM frames
func (h *Handler) VapiWebhook(w http.ResponseWriter, r *http.Request) {
	if h.vapiSecret != "" {
		secret := r.Header.Get("X-Vapi-Secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(h.vapiSecret)) != 1 {
			h.writeError(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
	}

	var req vapiRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.Message.Type != "voice-request" {
		h.writeError(w, http.StatusBadRequest, "Unsupported message type", "")
		return
	}
	if req.Message.SampleRate != int(audio.DefaultSampleRate) {
		h.writeError(w, http.StatusBadRequest, "Only 24000 Hz sample rate is supported", "")
		return
	}

	// The webhook contract is pinned to the server defaults; per-request
	// voice/model overrides are ignored.
	sreq := h.withDefaults(req.Message.Text, "", "")
	pcm, err := h.gateway.Synthesize(r.Context(), sreq, false)
	if err != nil {
		h.writeSynthesisError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(pcm)
}

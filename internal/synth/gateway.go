package synth

import (
	"context"
	"strings"

	"github.com/jvgaigals/gemini-tts-server/internal/audio"
	"github.com/jvgaigals/gemini-tts-server/internal/cache"
	"github.com/jvgaigals/gemini-tts-server/internal/logger"
	"github.com/jvgaigals/gemini-tts-server/internal/tts"
	"github.com/jvgaigals/gemini-tts-server/internal/usage"
)

// Request identifies one synthesis. The exact (model, voice, text) triple is
// the cache identity.
type Request struct {
	Text  string
	Voice string
	Model string
}

// Gateway orchestrates a synthesis call: validate, consult the cache, call
// the backend on a miss, wrap the PCM in a WAV container when asked, store
// the result.
type Gateway struct {
	engine tts.Engine
	cache  *cache.Cache
	usage  *usage.Service
	logger *logger.Log
}

// NewGateway wires an engine to a cache. usageService may be nil.
func NewGateway(engine tts.Engine, c *cache.Cache, usageService *usage.Service) *Gateway {
	return &Gateway{
		engine: engine,
		cache:  c,
		usage:  usageService,
		logger: logger.New(),
	}
}

// Synthesize returns audio bytes for the request: a WAV file when wantWav is
// set, raw PCM otherwise. No lock is held across the backend call, so
// concurrent misses for the same fingerprint each call the backend and the
// last writer wins.
func (g *Gateway) Synthesize(ctx context.Context, req Request, wantWav bool) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	kind := cache.KindPCM
	if wantWav {
		kind = cache.KindWAV
	}
	key := cache.Fingerprint(kind, req.Model, req.Voice, req.Text)

	if payload, ok := g.cache.Get(key); ok {
		g.record(req, len(payload), true)
		return payload, nil
	}

	pcm, err := g.engine.Synthesize(ctx, req.Text, req.Voice, req.Model)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	payload := pcm
	if wantWav {
		payload = audio.EncodeWAV(pcm, audio.DefaultSampleRate, audio.DefaultChannels, audio.DefaultBitsPerSample)
	}

	g.cache.Set(key, payload)
	g.record(req, len(payload), false)
	return payload, nil
}

func (g *Gateway) record(req Request, audioBytes int, cacheHit bool) {
	if g.usage == nil {
		return
	}
	if err := g.usage.Record(req.Model, req.Voice, len(req.Text), audioBytes, cacheHit); err != nil {
		g.logger.WithError(err).Warn("failed to record synthesis usage")
	}
}

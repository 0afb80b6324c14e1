package tts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jvgaigals/gemini-tts-server/config"
)

// ErrNoAudio is returned when the backend call succeeded but the response
// carried no audio payload.
var ErrNoAudio = errors.New("No audio produced by model")

// Engine converts text into raw PCM samples (16-bit little-endian, mono,
// 24 kHz) using the given voice and model.
type Engine interface {
	Synthesize(ctx context.Context, text, voice, model string) ([]byte, error)
	Name() string
}

// New selects an engine by configuration. Gemini is the default; google uses
// Cloud Text-to-Speech and dummy produces silence for offline runs.
func New(ctx context.Context, cfg *config.Config) (Engine, error) {
	switch cfg.Engine {
	case "", "gemini":
		return NewGeminiEngine(cfg.Gemini), nil
	case "google":
		return NewGoogleEngine(ctx, cfg.Google.CredentialsFile)
	case "dummy":
		return NewDummyEngine(), nil
	default:
		return nil, fmt.Errorf("unknown tts engine %q", cfg.Engine)
	}
}

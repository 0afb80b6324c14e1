package tts

import (
	"context"
	"strings"

	"github.com/jvgaigals/gemini-tts-server/internal/audio"
	"github.com/jvgaigals/gemini-tts-server/internal/logger"
)

// DummyEngine returns silence sized to the input text. Lets the server run
// without credentials.
type DummyEngine struct {
}

func NewDummyEngine() *DummyEngine {
	return &DummyEngine{}
}

func (d *DummyEngine) Synthesize(_ context.Context, text, _, _ string) ([]byte, error) {
	logger.New().Debug("dummy tts engine: returning silence")

	// 50ms of 16-bit mono silence per character
	samples := len(strings.TrimSpace(text)) * int(audio.DefaultSampleRate) / 20
	return make([]byte, samples*2), nil
}

func (d *DummyEngine) Name() string {
	return "dummy"
}

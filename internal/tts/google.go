package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/jvgaigals/gemini-tts-server/internal/audio"
	"github.com/jvgaigals/gemini-tts-server/internal/logger"
)

// GoogleEngine is an alternate backend using Cloud Text-to-Speech. LINEAR16
// responses arrive wrapped in a WAV container; the header is stripped so the
// gateway can re-apply the fixed profile.
type GoogleEngine struct {
	client *texttospeech.Client
	logger *logger.Log
}

func NewGoogleEngine(ctx context.Context, credentialsFile string) (*GoogleEngine, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleEngine{
		client: client,
		logger: logger.New(),
	}, nil
}

// Extract language code from voice name (e.g., "en-US-Chirp-HD-F" -> "en-US").
// Gemini-style single-word voices fall back to en-US.
func (g *GoogleEngine) extractLanguageCode(voiceName string) string {
	parts := strings.Split(voiceName, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	return "en-US"
}

func (g *GoogleEngine) Synthesize(ctx context.Context, text, voice, model string) ([]byte, error) {
	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: g.extractLanguageCode(voice),
			Name:         voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_LINEAR16,
			SampleRateHertz: int32(audio.DefaultSampleRate),
		},
	}

	g.logger.Debug(fmt.Sprintf("Generating Google TTS audio with voice: %s", voice))

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, ErrNoAudio
	}

	return audio.StripWAVHeader(resp.AudioContent), nil
}

func (g *GoogleEngine) Name() string {
	return "Google Cloud Text-to-Speech"
}

func (g *GoogleEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

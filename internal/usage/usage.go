package usage

import (
	"fmt"

	"github.com/jvgaigals/gemini-tts-server/internal/database"
)

// Service records synthesis activity for the /stats endpoint. Recording
// failures are reported to the caller but must never fail a request.
type Service struct {
	db *database.DB
}

func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Stats aggregates the synthesis log.
type Stats struct {
	TotalRequests int64 `db:"total_requests" json:"total_requests"`
	CacheHits     int64 `db:"cache_hits" json:"cache_hits"`
	TotalBytes    int64 `db:"total_bytes" json:"total_bytes"`
	TotalChars    int64 `db:"total_chars" json:"total_chars"`
}

// ModelStats breaks totals down per model.
type ModelStats struct {
	Model    string `db:"model" json:"model"`
	Requests int64  `db:"requests" json:"requests"`
	Bytes    int64  `db:"bytes" json:"bytes"`
}

// Record logs one synthesis request.
func (s *Service) Record(model, voice string, textChars, audioBytes int, cacheHit bool) error {
	_, err := s.db.Exec(
		`INSERT INTO synthesis_log (model, voice, text_chars, audio_bytes, cache_hit) VALUES (?, ?, ?, ?, ?)`,
		model, voice, textChars, audioBytes, cacheHit,
	)
	if err != nil {
		return fmt.Errorf("failed to record synthesis: %w", err)
	}
	return nil
}

// Stats returns totals across all recorded requests.
func (s *Service) Stats() (*Stats, error) {
	var st Stats
	err := s.db.Get(&st, `
		SELECT
			COUNT(*) AS total_requests,
			COALESCE(SUM(cache_hit), 0) AS cache_hits,
			COALESCE(SUM(audio_bytes), 0) AS total_bytes,
			COALESCE(SUM(text_chars), 0) AS total_chars
		FROM synthesis_log`)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &st, nil
}

// ByModel returns per-model totals, busiest first.
func (s *Service) ByModel() ([]ModelStats, error) {
	var rows []ModelStats
	err := s.db.Select(&rows, `
		SELECT model, COUNT(*) AS requests, COALESCE(SUM(audio_bytes), 0) AS bytes
		FROM synthesis_log
		GROUP BY model
		ORDER BY requests DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load per-model stats: %w", err)
	}
	return rows, nil
}

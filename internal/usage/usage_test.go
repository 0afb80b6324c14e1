package usage

import (
	"testing"

	"github.com/jvgaigals/gemini-tts-server/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB(:memory:) error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db)
}

func TestRecordAndStats(t *testing.T) {
	s := newTestService(t)

	if err := s.Record("m1", "Kore", 5, 48, false); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Record("m1", "Kore", 5, 48, true); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Record("m2", "Charon", 10, 100, false); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if st.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, want 3", st.TotalRequests)
	}
	if st.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", st.CacheHits)
	}
	if st.TotalBytes != 196 {
		t.Errorf("TotalBytes = %d, want 196", st.TotalBytes)
	}
	if st.TotalChars != 20 {
		t.Errorf("TotalChars = %d, want 20", st.TotalChars)
	}
}

func TestByModel(t *testing.T) {
	s := newTestService(t)

	for i := 0; i < 3; i++ {
		if err := s.Record("m1", "Kore", 5, 48, false); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}
	if err := s.Record("m2", "Kore", 5, 48, false); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	rows, err := s.ByModel()
	if err != nil {
		t.Fatalf("ByModel() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Model != "m1" || rows[0].Requests != 3 {
		t.Errorf("rows[0] = %+v, want m1 with 3 requests", rows[0])
	}
}

func TestStatsEmpty(t *testing.T) {
	s := newTestService(t)

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if st.TotalRequests != 0 || st.TotalBytes != 0 {
		t.Errorf("empty stats = %+v, want zeros", st)
	}
}

package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(DefaultTTL)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache returned a hit")
	}

	c.Set("k", []byte("audio"))
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get after Set returned a miss")
	}
	if !bytes.Equal(got, []byte("audio")) {
		t.Errorf("payload = %q, want %q", got, "audio")
	}
}

func TestLazyExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(10*time.Minute, func() time.Time { return now })

	c.Set("k", []byte("audio"))

	now = now.Add(10*time.Minute - time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired before the TTL elapsed")
	}

	now = now.Add(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("entry still served exactly at the TTL boundary")
	}

	// Expired entries are skipped on read but not reclaimed.
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestSetOverwriteRefreshesTimestamp(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(10*time.Minute, func() time.Time { return now })

	c.Set("k", []byte("old"))
	now = now.Add(9 * time.Minute)
	c.Set("k", []byte("new"))

	now = now.Add(9 * time.Minute)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("overwritten entry expired against the original timestamp")
	}
	if !bytes.Equal(got, []byte("new")) {
		t.Errorf("payload = %q, want %q", got, "new")
	}
}

func TestFingerprintTrimsText(t *testing.T) {
	a := Fingerprint(KindWAV, "m1", "Kore", "Hello")
	b := Fingerprint(KindWAV, "m1", "Kore", "  Hello \n")
	if a != b {
		t.Errorf("fingerprints differ for whitespace-trimmed text: %q vs %q", a, b)
	}
}

func TestFingerprintKindIsolation(t *testing.T) {
	wav := Fingerprint(KindWAV, "m1", "Kore", "Hello")
	pcm := Fingerprint(KindPCM, "m1", "Kore", "Hello")
	if wav == pcm {
		t.Error("WAV and PCM fingerprints collide for the same request")
	}
}

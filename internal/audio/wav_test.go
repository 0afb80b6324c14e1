package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeaderLayout(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	wav := EncodeWAV(pcm, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len(wav) = %d, want %d", len(wav), 44+len(pcm))
	}

	if got := string(wav[0:4]); got != "RIFF" {
		t.Errorf("bytes 0-3 = %q, want %q", got, "RIFF")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("riff size = %d, want %d", got, 36+len(pcm))
	}
	if got := string(wav[8:12]); got != "WAVE" {
		t.Errorf("bytes 8-11 = %q, want %q", got, "WAVE")
	}
	if got := string(wav[12:16]); got != "fmt " {
		t.Errorf("bytes 12-15 = %q, want %q", got, "fmt ")
	}
	if got := binary.LittleEndian.Uint32(wav[16:20]); got != 16 {
		t.Errorf("fmt chunk size = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("format tag = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 24000 {
		t.Errorf("sample rate = %d, want 24000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 48000 {
		t.Errorf("byte rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := string(wav[36:40]); got != "data" {
		t.Errorf("bytes 36-39 = %q, want %q", got, "data")
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d, want %d", got, len(pcm))
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Errorf("payload = %v, want %v", wav[44:], pcm)
	}
}

func TestEncodeWAVEmptyPCM(t *testing.T) {
	wav := EncodeWAV(nil, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)

	if len(wav) != 44 {
		t.Fatalf("len(wav) = %d, want 44", len(wav))
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != 36 {
		t.Errorf("riff size = %d, want 36", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
}

func TestEncodeWAVFourZeroBytes(t *testing.T) {
	// Four zero PCM bytes must produce exactly a 48-byte file.
	wav := EncodeWAV(make([]byte, 4), DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)

	if len(wav) != 48 {
		t.Fatalf("len(wav) = %d, want 48", len(wav))
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 4 {
		t.Errorf("data size = %d, want 4", got)
	}
	if !bytes.Equal(wav[44:], []byte{0, 0, 0, 0}) {
		t.Errorf("payload = %v, want four zero bytes", wav[44:])
	}
}

func TestStripWAVHeader(t *testing.T) {
	pcm := []byte{9, 8, 7, 6}
	wav := EncodeWAV(pcm, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)

	if got := StripWAVHeader(wav); !bytes.Equal(got, pcm) {
		t.Errorf("StripWAVHeader(wav) = %v, want %v", got, pcm)
	}

	// Non-RIFF buffers pass through untouched.
	raw := bytes.Repeat([]byte{1}, 64)
	if got := StripWAVHeader(raw); !bytes.Equal(got, raw) {
		t.Errorf("StripWAVHeader(raw) modified a non-RIFF buffer")
	}
}

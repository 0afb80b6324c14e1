package audio

import (
	"bytes"
	"encoding/binary"
)

// Synthesis profile produced by the Gemini TTS models. This is the only
// profile the server ever emits.
const (
	DefaultSampleRate    uint32 = 24000
	DefaultChannels      uint16 = 1
	DefaultBitsPerSample uint16 = 16
)

// EncodeWAV wraps raw PCM samples in a canonical 44-byte RIFF/WAVE header.
// The PCM bytes pass through unmodified; an empty slice yields a well-formed
// zero-length-data file.
func EncodeWAV(pcm []byte, sampleRate uint32, channels, bitsPerSample uint16) []byte {
	dataSize := uint32(len(pcm))
	byteRate := sampleRate * uint32(channels) * uint32(bitsPerSample) / 8
	blockAlign := channels * bitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36)+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM format tag
	binary.Write(buf, binary.LittleEndian, channels)
	binary.Write(buf, binary.LittleEndian, sampleRate)
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bitsPerSample)
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)
	return buf.Bytes()
}

// StripWAVHeader returns the PCM payload of a canonical 44-byte WAV file.
// Buffers that don't carry a RIFF header are returned as-is.
func StripWAVHeader(data []byte) []byte {
	if len(data) >= 44 && bytes.HasPrefix(data, []byte("RIFF")) {
		return data[44:]
	}
	return data
}

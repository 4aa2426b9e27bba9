// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package audio converts raw speech synthesis output into playable clips.
// The Gemini TTS models return 16-bit little-endian PCM at 24kHz mono with
// no container, so browsers cannot play it directly. This package frames
// the PCM as RIFF/WAVE and computes the clip measurements (duration, peak,
// RMS) reported alongside each narration.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Format describes the sample layout of a PCM stream.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// DefaultFormat matches the Gemini TTS output: 24kHz, mono, 16-bit.
var DefaultFormat = Format{
	SampleRate:    24000,
	Channels:      1,
	BitsPerSample: 16,
}

// ErrEmptyPCM is returned when a synthesis result carries no audio data.
var ErrEmptyPCM = errors.New("audio: empty PCM data")

// Validate checks that the format is one this package can process.
// Only 16-bit PCM is supported; that is the only layout the TTS models emit.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("audio: invalid sample rate %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("audio: invalid channel count %d", f.Channels)
	}
	if f.BitsPerSample != 16 {
		return fmt.Errorf("audio: unsupported bits per sample %d", f.BitsPerSample)
	}
	return nil
}

// bytesPerFrame returns the byte size of one frame (all channels).
func (f Format) bytesPerFrame() int {
	return f.Channels * f.BitsPerSample / 8
}

// byteRate returns bytes consumed per second of playback.
func (f Format) byteRate() int {
	return f.SampleRate * f.bytesPerFrame()
}

// trimPCM drops a trailing odd byte. Interrupted model streams can yield an
// odd-length payload; half a sample is noise, not signal.
func trimPCM(pcm []byte) []byte {
	if len(pcm)%2 != 0 {
		return pcm[:len(pcm)-1]
	}
	return pcm
}

// EncodeWAV wraps raw PCM in a RIFF/WAVE container.
//
// The output is a canonical 44-byte header followed by the sample data:
// a RIFF chunk wrapping a "fmt " subchunk (PCM, format code 1) and a
// "data" subchunk. Odd-length input is trimmed to a whole sample first.
func EncodeWAV(pcm []byte, f Format) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	pcm = trimPCM(pcm)
	if len(pcm) == 0 {
		return nil, ErrEmptyPCM
	}

	const headerSize = 44
	out := make([]byte, headerSize+len(pcm))

	// RIFF chunk descriptor
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")

	// fmt subchunk
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // PCM subchunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // audio format: PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(f.byteRate()))
	binary.LittleEndian.PutUint16(out[32:34], uint16(f.bytesPerFrame()))
	binary.LittleEndian.PutUint16(out[34:36], uint16(f.BitsPerSample))

	// data subchunk
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[headerSize:], pcm)

	return out, nil
}

// Duration returns the playback length in seconds for a PCM payload.
func Duration(pcmLen int, f Format) float64 {
	rate := f.byteRate()
	if rate <= 0 {
		return 0
	}
	return float64(pcmLen-pcmLen%2) / float64(rate)
}

// ToFloat32 converts 16-bit little-endian PCM to normalized float32 samples
// in [-1, 1). Odd-length input is trimmed to a whole sample first.
func ToFloat32(pcm []byte) []float32 {
	pcm = trimPCM(pcm)

	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		samples[i] = float32(s) / 32768.0
	}
	return samples
}

// Analyze returns the peak amplitude and RMS level of normalized samples.
// Both values are in [0, 1]; silence yields (0, 0).
func Analyze(samples []float32) (peak, rms float64) {
	if len(samples) == 0 {
		return 0, 0
	}

	var sumSquares float64
	for _, s := range samples {
		v := math.Abs(float64(s))
		if v > peak {
			peak = v
		}
		sumSquares += float64(s) * float64(s)
	}

	rms = math.Sqrt(sumSquares / float64(len(samples)))
	return peak, rms
}

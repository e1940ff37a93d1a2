// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared by the kartina packages.
// Nothing here imports the packages under test, so any of them may use it.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by sources configured to fail.
var ErrInjected = errors.New("audiotest: injected read failure")

// MockSource generates audio data for tests.
// It satisfies audio.Source structurally.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32

	// FailAt makes the read that would start at this frame index return
	// ErrInjected once; the frames of that read are lost. Negative disables.
	FailAt int
	failed bool
	closed bool
}

// NewMockSource creates a source producing totalSamples frames per channel
// from waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
		FailAt:       -1,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource generates a sine wave at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewRampSource generates sample index i as i/totalSamples, scaled into
// [-1, 1], with the channel number added as a small offset.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return float32(sample)/float32(totalSamples)*2 - 1 + float32(channel)*0.001
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Generated reports how many frames were produced or skipped so far.
func (m *MockSource) Generated() int { return m.generated }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)

	if !m.failed && m.FailAt >= 0 && m.generated <= m.FailAt && m.FailAt < m.generated+frames {
		m.failed = true
		m.generated += frames
		return 0, ErrInjected
	}

	for f := range frames {
		idx := m.generated + f
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(idx, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/kartina/internal/audiotest"
)

// readAll collects frames and skip errors until EOF or a terminal error.
func readAll(t *testing.T, r Reader) (frames []*Frame, skipped int, err error) {
	t.Helper()
	for range 100_000 {
		f, err := r.ReadFrame()
		switch {
		case err == nil:
			frames = append(frames, f)
		case errors.Is(err, ErrCorruptFrame):
			skipped++
		default:
			return frames, skipped, err
		}
	}
	t.Fatal("reader never finished")
	return nil, 0, nil
}

func TestNewPCMReader_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		if _, err := NewPCMReader(audiotest.NewSilentSource(8000, 1, 10), WithFrameSize(n)); !errors.Is(err, ErrInvalidFrameSize) {
			t.Errorf("WithFrameSize(%d) error = %v, want ErrInvalidFrameSize", n, err)
		}
	}
}

func TestPCMReader_Framing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		frames     int // per channel
		size       int
		wantFrames int
		wantPad    int // padded values in the last frame
	}{
		{"default size stereo exact", 2, 1152 * 3, DefaultSize, 3, 0},
		{"default size stereo partial", 2, 1152*2 + 100, DefaultSize, 3, DefaultSize - 200},
		{"size one", 1, 5, 1, 5, 0},
		{"large frame", 2, 6000, 12_000, 1, 0},
		{"larger than stream", 1, 100, 10_001, 1, 10_001 - 100},
		{"size not channel aligned", 2, 10, 3, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(44100, tt.channels, tt.frames, 0.5)
			r, err := NewPCMReader(src, WithFrameSize(tt.size))
			if err != nil {
				t.Fatalf("NewPCMReader() error = %v", err)
			}
			if r.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", r.Size(), tt.size)
			}

			frames, skipped, err := readAll(t, r)
			if err != io.EOF {
				t.Fatalf("final error = %v, want EOF", err)
			}
			if skipped != 0 {
				t.Errorf("skipped = %d, want 0", skipped)
			}
			if len(frames) != tt.wantFrames {
				t.Fatalf("got %d frames, want %d", len(frames), tt.wantFrames)
			}

			for _, f := range frames {
				if f.Len() != tt.size {
					t.Fatalf("frame length %d, want %d", f.Len(), tt.size)
				}
				if f.SampleRate != 44100 || f.Channels != tt.channels {
					t.Errorf("frame format = (%d, %d)", f.SampleRate, f.Channels)
				}
			}

			last := frames[len(frames)-1].Samples
			pad := 0
			for i := len(last) - 1; i >= 0 && last[i] == 32768; i-- {
				pad++
			}
			if pad != tt.wantPad {
				t.Errorf("padding = %d, want %d", pad, tt.wantPad)
			}
			if last[0] != 49152 {
				t.Errorf("first value = %d, want 49152", last[0])
			}
		})
	}
}

func TestPCMReader_Mono(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 8, func(_ int, ch int) float32 {
		if ch == 0 {
			return 1
		}
		return 0
	})
	r, err := NewPCMReader(src, WithFrameSize(4), WithMono())
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	frames, _, err := readAll(t, r)
	if err != io.EOF {
		t.Fatalf("final error = %v, want EOF", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Channels != 1 {
		t.Errorf("Channels = %d, want 1", frames[0].Channels)
	}
	for _, v := range frames[0].Samples {
		if v != 49152 {
			t.Errorf("value = %d, want 49152", v)
		}
	}
}

func TestPCMReader_CorruptReadSkipsFrame(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 12)
	src.FailAt = 4
	r, _ := NewPCMReader(src, WithFrameSize(4))

	frames, skipped, err := readAll(t, r)
	if err != io.EOF {
		t.Fatalf("final error = %v, want EOF", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	// The second frame starts at sample 8: 8/12*2-1.
	if got, want := frames[1].Samples[0], uint16(43691); got != want {
		t.Errorf("second frame first value = %d, want %d", got, want)
	}
}

// failingSource fails every read.
type failingSource struct{ reads int }

func (f *failingSource) SampleRate() int { return 8000 }
func (f *failingSource) Channels() int   { return 1 }
func (f *failingSource) BufSize() int    { return 64 }
func (f *failingSource) Close() error    { return nil }
func (f *failingSource) ReadSamples([]float32) (int, error) {
	f.reads++
	return 0, audiotest.ErrInjected
}

func TestPCMReader_StreamBroken(t *testing.T) {
	t.Parallel()

	src := &failingSource{}
	r, _ := NewPCMReader(src, WithFrameSize(16))

	_, skipped, err := readAll(t, r)
	if !errors.Is(err, ErrStreamBroken) || !errors.Is(err, audiotest.ErrInjected) {
		t.Fatalf("final error = %v, want ErrStreamBroken wrapping ErrInjected", err)
	}
	if skipped != maxConsecutiveErrors {
		t.Errorf("skipped = %d, want %d", skipped, maxConsecutiveErrors)
	}
	if _, err := r.ReadFrame(); !errors.Is(err, ErrStreamBroken) {
		t.Errorf("error is not sticky: %v", err)
	}
}

func TestPCMReader_EmptySource(t *testing.T) {
	t.Parallel()

	r, _ := NewPCMReader(audiotest.NewSilentSource(8000, 2, 0))
	if f, err := r.ReadFrame(); f != nil || err != io.EOF {
		t.Errorf("ReadFrame() = (%v, %v), want (nil, EOF)", f, err)
	}
}

func TestPCMReader_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 1)
	r, _ := NewPCMReader(src)
	if err := r.Close(); err != nil || !src.Closed() {
		t.Errorf("Close() = %v, closed = %v", err, src.Closed())
	}
}

func BenchmarkPCMReader(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		r, _ := NewPCMReader(audiotest.NewSineSource(44100, 2, 44100, 440))
		for {
			if _, err := r.ReadFrame(); err != nil {
				break
			}
		}
	}
}

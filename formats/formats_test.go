// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/kartina/audio"
	"github.com/ik5/kartina/internal/audiotest"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"wav", audiotest.EncodeWAV16(8000, 1, []int16{0}), WAV},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), AIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFCFVER"), AIFF},
		{"ogg", []byte("OggS\x00\x02"), Vorbis},
		{"id3", []byte("ID3\x04\x00"), MP3},
		{"frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, MP3},
		{"riff not wave", []byte("RIFF\x00\x00\x00\x00AVI LIST"), ""},
		{"text", []byte("hello"), ""},
		{"empty", nil, ""},
		{"single ff", []byte{0xFF}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRegistry_Keys(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, key := range []string{"mp3", ".MP3", "wav", "wave", "ogg", ".oga", "aiff", "aif"} {
		if _, ok := reg.Get(key); !ok {
			t.Errorf("Get(%q) not found", key)
		}
	}

	var unsupported *audio.UnsupportedFormatError
	if _, err := reg.Decode("flac", bytes.NewReader(nil)); !errors.As(err, &unsupported) {
		t.Errorf("Decode(flac) error = %v, want UnsupportedFormatError", err)
	}
}

func TestNewRegistry_DecodeDetectedWAV(t *testing.T) {
	t.Parallel()

	data := audiotest.EncodeWAV16(16000, 2, audiotest.Repeat(-8192, 64))
	src, err := NewRegistry().Decode(Detect(data), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	buf := make([]float32, 128)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 64 {
		t.Fatalf("ReadSamples() n = %d, want 64", n)
	}
	if buf[0] != -0.25 {
		t.Errorf("sample = %v, want -0.25", buf[0])
	}
}

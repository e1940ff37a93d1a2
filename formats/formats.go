// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"

	"github.com/ik5/kartina/audio"
	"github.com/ik5/kartina/formats/aiff"
	"github.com/ik5/kartina/formats/mp3"
	"github.com/ik5/kartina/formats/vorbis"
	"github.com/ik5/kartina/formats/wav"
)

// Format keys understood by the registry returned from NewRegistry.
const (
	MP3    = "mp3"
	WAV    = "wav"
	Vorbis = "ogg"
	AIFF   = "aiff"
)

// NewRegistry returns a registry with every bundled decoder registered
// under its canonical key and common file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(MP3, mp3.Decoder{}, "mpga", "mp2")
	r.Register(WAV, wav.Decoder{}, "wave")
	r.Register(Vorbis, vorbis.Decoder{}, "oga", "vorbis")
	r.Register(AIFF, aiff.Decoder{}, "aif", "aifc")
	return r
}

// Detect sniffs the container of data from its leading bytes and returns
// the matching format key, or "" when nothing matches.
func Detect(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return WAV
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return AIFF
	case bytes.HasPrefix(data, []byte("OggS")):
		return Vorbis
	case bytes.HasPrefix(data, []byte("ID3")):
		return MP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG audio frame sync: eleven set bits.
		return MP3
	}
	return ""
}

// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates missing RIFF/WAVE markers.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding is returned for compressed, float or 8-bit data.
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")

	// ErrUnsupportedWavLayout indicates a missing or malformed fmt or data chunk.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")

	ErrDecode = errors.New("wav decode failed")
)

// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrNotMP3File means no valid frame header was found at the start of
	// the stream.
	ErrNotMP3File = errors.New("not an MP3 stream")

	// ErrDecode wraps a failure while decoding frame data.
	ErrDecode = errors.New("mp3 decode failed")
)

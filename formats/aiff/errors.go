// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates missing FORM/AIFF markers.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth is returned for sample sizes other than
	// 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout indicates a missing COMM chunk.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	ErrDecode = errors.New("aiff decode failed")
)

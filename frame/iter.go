// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"errors"
	"io"
	"iter"
)

// Frames returns the outcomes of reading r until it ends. Each decoded
// frame is yielded with a nil error and each skipped frame as a nil frame
// with its ErrCorruptFrame error. A terminal error is yielded last; io.EOF
// ends the sequence silently. The sequence is single use.
func Frames(r Reader) iter.Seq2[*Frame, error] {
	return func(yield func(*Frame, error) bool) {
		for {
			f, err := r.ReadFrame()
			switch {
			case err == nil:
				if !yield(f, nil) {
					return
				}
			case errors.Is(err, io.EOF):
				return
			case errors.Is(err, ErrCorruptFrame):
				if !yield(nil, err) {
					return
				}
			default:
				yield(nil, err)
				return
			}
		}
	}
}

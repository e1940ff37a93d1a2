// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package window

import "context"

func Run(_ context.Context, _ Surface, _ *Backend, _ Config) error {
	return ErrNoWindow
}

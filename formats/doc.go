// SPDX-License-Identifier: EPL-2.0

// Package formats bundles the decoders under formats/ into a single
// audio.Registry and sniffs containers by their magic bytes.
//
//	reg := formats.NewRegistry()
//	key := formats.Detect(data)
//	if key == "" {
//		key = filepath.Ext(path)
//	}
//	src, err := reg.Decode(key, bytes.NewReader(data))
package formats

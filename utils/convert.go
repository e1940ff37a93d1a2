// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SilenceU16 is the offset-binary value of a zero sample.
const SilenceU16 uint16 = 32768

// Float32ToInt16 rounds x onto signed 16-bit PCM. The range is symmetric,
// so -1 becomes -32767; out of range values are clamped and NaN is 0.
func Float32ToInt16(x float32) int16 {
	switch {
	case x != x:
		return 0
	case x >= 1:
		return math.MaxInt16
	case x <= -1:
		return -math.MaxInt16
	}
	return int16(math.Round(float64(x) * math.MaxInt16))
}

// Float32ToUint16 maps a sample in [-1, 1] onto offset-binary unsigned
// 16-bit: -1 becomes 0, 0 becomes 32768 and +1 becomes 65535.
// Out of range values are clamped. NaN maps to silence.
func Float32ToUint16(x float32) uint16 {
	if x != x {
		return SilenceU16
	}
	if x >= 1 {
		return math.MaxUint16
	}
	if x <= -1 {
		return 0
	}
	v := math.Round(float64(x)*32768.0 + 32768.0)
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

// IntScale returns the full-scale magnitude of a signed integer sample of
// bitDepth bits, or 0 when the depth is not 8, 16, 24 or 32.
func IntScale(bitDepth int) float32 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float32(uint64(1) << (bitDepth - 1))
	}
	return 0
}

// Uint16ToUnit normalizes an unsigned sample into [0, 1].
func Uint16ToUnit(v uint16) float32 {
	return float32(v) / math.MaxUint16
}

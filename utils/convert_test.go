// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"max positive", 1, math.MaxInt16},
		{"max negative", -1, -math.MaxInt16},
		{"half positive", 0.5, 16384},
		{"half negative", -0.5, -16384},
		{"clamp over max", 3, math.MaxInt16},
		{"clamp under min", -3, -math.MaxInt16},
		{"nan", float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Float32ToInt16(tt.input)
			if got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToUint16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  uint16
	}{
		{"min", -1, 0},
		{"below min", -7, 0},
		{"silence", 0, SilenceU16},
		{"max", 1, math.MaxUint16},
		{"above max", 2, math.MaxUint16},
		{"half", 0.5, 49152},
		{"negative half", -0.5, 16384},
		{"nan", float32(math.NaN()), SilenceU16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToUint16(tt.input); got != tt.want {
				t.Errorf("Float32ToUint16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToUint16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToUint16(-1)
	for f := float32(-0.99); f <= 1.0; f += 0.01 {
		cur := Float32ToUint16(f)
		if cur < prev {
			t.Fatalf("Float32ToUint16 not monotonic at %v: %d < %d", f, cur, prev)
		}
		prev = cur
	}
}

func TestFloat32ToUint16_ExactForInt16(t *testing.T) {
	t.Parallel()

	for _, v := range []int16{math.MinInt16, -16384, -1, 0, 1, 16384, math.MaxInt16} {
		want := uint16(int32(v) + 32768)
		if got := Float32ToUint16(float32(v) / 32768); got != want {
			t.Errorf("Float32ToUint16(%d/32768) = %d, want %d", v, got, want)
		}
	}
}

func TestUint16ToUnit(t *testing.T) {
	t.Parallel()

	if got := Uint16ToUnit(0); got != 0 {
		t.Errorf("Uint16ToUnit(0) = %v, want 0", got)
	}
	if got := Uint16ToUnit(math.MaxUint16); got != 1 {
		t.Errorf("Uint16ToUnit(max) = %v, want 1", got)
	}
}

func TestFloat32ToUint16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToUint16(0.25)
	})
	if allocs > 0 {
		t.Errorf("Float32ToUint16 allocated %v times, want 0", allocs)
	}
}

func BenchmarkFloat32ToUint16(b *testing.B) {
	samples := make([]float32, 2304)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) * 0.01))
	}
	out := make([]uint16, len(samples))

	b.ReportAllocs()
	for range b.N {
		for j, s := range samples {
			out[j] = Float32ToUint16(s)
		}
	}
}

func TestIntScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		want  float32
	}{
		{8, 128},
		{16, 32768},
		{24, 8388608},
		{32, 2147483648},
		{12, 0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := IntScale(tt.depth); got != tt.want {
			t.Errorf("IntScale(%d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Remix converts a source to a different channel count. Fewer output
// channels average the input channels that fold onto them; more output
// channels repeat the input channels in order.
type Remix struct {
	src      Source
	channels int
	tmp      []float32
}

func NewRemix(src Source, channels int) (*Remix, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	return &Remix{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}, nil
}

// Downmix averages all channels of src into one.
func Downmix(src Source) *Remix {
	m, _ := NewRemix(src, 1)
	return m
}

func (m *Remix) SampleRate() int { return m.src.SampleRate() }
func (m *Remix) Channels() int   { return m.channels }
func (m *Remix) BufSize() int    { return m.src.BufSize() }

func (m *Remix) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("remix close: %w", err)
	}
	return nil
}

func (m *Remix) ReadSamples(dst []float32) (int, error) {
	in := m.src.Channels()
	out := m.channels
	if in == out {
		return m.src.ReadSamples(dst)
	}
	if len(dst)%out != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / out
	if frames == 0 {
		return 0, nil
	}
	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	buf := m.tmp[:need]

	n, err := m.src.ReadSamples(buf)
	got := n / in

	if in < out {
		for f := range got {
			for c := range out {
				dst[f*out+c] = buf[f*in+c%in]
			}
		}
		return got * out, err
	}

	for f := range got {
		for c := range out {
			var sum float32
			var cnt int
			for i := c; i < in; i += out {
				sum += buf[f*in+i]
				cnt++
			}
			dst[f*out+c] = sum / float32(cnt)
		}
	}
	return got * out, err
}

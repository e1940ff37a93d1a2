// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// drainPoll is how often a handle checks whether the player went idle.
const drainPoll = 20 * time.Millisecond

// OtoDevice plays through the system audio output. The underlying context
// is opened on the first Play; only one may exist per process.
type OtoDevice struct {
	format Format

	once sync.Once
	ctx  *oto.Context
	err  error
}

func NewOtoDevice(f Format) *OtoDevice {
	return &OtoDevice{format: f}
}

func (d *OtoDevice) Format() Format { return d.format }

func (d *OtoDevice) open() error {
	d.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   d.format.SampleRate,
			ChannelCount: d.format.Channels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			d.err = err
			return
		}
		<-ready
		d.ctx = ctx
	})
	return d.err
}

type otoHandle struct {
	*stream
	player *oto.Player
}

func (d *OtoDevice) Play(r io.Reader) (Handle, error) {
	if err := d.open(); err != nil {
		return nil, fmt.Errorf("opening audio output: %w", err)
	}

	s := newStream(r)
	p := d.ctx.NewPlayer(s)
	p.Play()

	h := &otoHandle{stream: s, player: p}
	go h.watch()
	return h, nil
}

// watch finishes the stream once the player ran dry.
func (h *otoHandle) watch() {
	t := time.NewTicker(drainPoll)
	defer t.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-t.C:
			if !h.player.IsPlaying() {
				h.finish(h.player.Err())
				return
			}
		}
	}
}

func (d *OtoDevice) Stop(h Handle) error {
	oh, ok := h.(*otoHandle)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownHandle, h)
	}
	oh.stop()
	oh.player.Pause()
	if err := oh.player.Close(); err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}

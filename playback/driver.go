// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/kartina/audio"
	"github.com/ik5/kartina/internal/observe"
)

// Driver decodes a stream on its own and feeds it to a Device, converting
// rate and channel count to what the device expects.
type Driver struct {
	dev Device
	reg *audio.Registry
	log *slog.Logger
	met *observe.Metrics

	warnOnce sync.Once
}

type DriverOption func(*Driver)

func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.log = l }
}

func WithMetrics(m *observe.Metrics) DriverOption {
	return func(d *Driver) { d.met = m }
}

func NewDriver(dev Device, reg *audio.Registry, opts ...DriverOption) *Driver {
	d := &Driver{dev: dev, reg: reg}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.met == nil {
		d.met = observe.Nop()
	}
	return d
}

// Play decodes stream as format and blocks until the device played it all
// or ctx is done, in which case the device is stopped and ctx.Err() is
// returned. A device that cannot start is reported once in the log and
// yields ErrDeviceUnavailable.
func (d *Driver) Play(ctx context.Context, stream []byte, format string) error {
	out := d.dev.Format()
	if out.SampleRate <= 0 || out.Channels <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidFormat, out)
	}

	src, err := d.reg.Decode(format, bytes.NewReader(stream))
	if err != nil {
		d.met.PlaybackErrors.Add(ctx, 1)
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer src.Close()

	pcm, err := convert(src, out)
	if err != nil {
		d.met.PlaybackErrors.Add(ctx, 1)
		return err
	}

	h, err := d.dev.Play(audio.NewPCMReader(pcm))
	if err != nil {
		d.met.PlaybackErrors.Add(ctx, 1)
		d.warnOnce.Do(func() {
			d.log.Warn("audio device unavailable, continuing without sound", "err", err)
		})
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	d.log.Info("playback started",
		"source_rate", src.SampleRate(), "source_channels", src.Channels(),
		"device_rate", out.SampleRate, "device_channels", out.Channels)

	err = h.Wait(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		if stopErr := d.dev.Stop(h); stopErr != nil {
			d.log.Warn("stopping playback", "err", stopErr)
		}
		return ctxErr
	}
	if err != nil {
		d.met.PlaybackErrors.Add(ctx, 1)
		d.log.Warn("playback ended early", "err", err)
		return fmt.Errorf("playing stream: %w", err)
	}
	d.log.Info("playback finished")
	return nil
}

// convert resamples and remixes src to the device format.
func convert(src audio.Source, out Format) (audio.Source, error) {
	var s audio.Source = src
	if s.SampleRate() != out.SampleRate {
		s = audio.NewResampler(s, out.SampleRate)
	}
	if s.Channels() != out.Channels {
		r, err := audio.NewRemix(s, out.Channels)
		if err != nil {
			return nil, fmt.Errorf("remixing to %d channels: %w", out.Channels, err)
		}
		s = r
	}
	return s, nil
}

// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/kartina/internal/observe"
	"golang.org/x/time/rate"
)

// Summary counts what a Run did.
type Summary struct {
	Decoded uint64
	Skipped uint64
	// Dropped frames were replaced in the channel before anyone took them.
	Dropped uint64
}

// Source drives a Reader and publishes every decoded frame into a
// Channel. It never waits for the consumer.
type Source struct {
	r        Reader
	ch       *Channel
	log      *slog.Logger
	met      *observe.Metrics
	limiter  *rate.Limiter
	realtime bool
}

type SourceOption func(*Source)

func WithLogger(l *slog.Logger) SourceOption {
	return func(s *Source) { s.log = l }
}

func WithMetrics(m *observe.Metrics) SourceOption {
	return func(s *Source) { s.met = m }
}

// WithPacing waits on l before publishing each frame.
func WithPacing(l *rate.Limiter) SourceOption {
	return func(s *Source) { s.limiter = l }
}

// WithRealtime paces publishing to the playback rate of the stream, derived
// from the first frame.
func WithRealtime() SourceOption {
	return func(s *Source) { s.realtime = true }
}

func NewSource(r Reader, ch *Channel, opts ...SourceOption) *Source {
	s := &Source{r: r, ch: ch}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.met == nil {
		s.met = observe.Nop()
	}
	return s
}

// Run reads frames until the stream ends, a terminal error occurs or ctx
// is done. The end of the stream is not an error. Frames get their Seq
// here, in decode order, starting at 1.
func (s *Source) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	var index uint64

	for f, err := range Frames(s.r) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sum, ctxErr
		}
		index++

		if err != nil {
			if !errors.Is(err, ErrCorruptFrame) {
				s.log.Error("frame decoding stopped", "err", err, "decoded", sum.Decoded)
				return sum, fmt.Errorf("decoding frame %d: %w", index, err)
			}
			sum.Skipped++
			s.met.FramesSkipped.Add(ctx, 1)
			s.log.Warn("skipping undecodable frame", "index", index, "err", err)
			continue
		}
		if f == nil {
			continue
		}

		if err := s.pace(ctx, f); err != nil {
			return sum, err
		}

		sum.Decoded++
		f.Seq = sum.Decoded
		if s.ch.Publish(f) {
			sum.Dropped++
			s.met.FramesDropped.Add(ctx, 1)
		}
		s.met.FramesDecoded.Add(ctx, 1)
		s.log.Debug("frame published", "seq", f.Seq)
	}

	s.log.Info("frame stream finished",
		"decoded", sum.Decoded, "skipped", sum.Skipped, "dropped", sum.Dropped)
	return sum, nil
}

func (s *Source) pace(ctx context.Context, f *Frame) error {
	if s.limiter == nil && s.realtime && f.Len() > 0 && f.SampleRate > 0 {
		perSecond := float64(f.SampleRate*max(f.Channels, 1)) / float64(f.Len())
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

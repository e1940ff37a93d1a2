// SPDX-License-Identifier: EPL-2.0

package kartina

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/kartina/audio"
	"github.com/ik5/kartina/formats"
	"github.com/ik5/kartina/frame"
	"github.com/ik5/kartina/internal/observe"
	"github.com/ik5/kartina/mesh"
	"github.com/ik5/kartina/playback"
	"github.com/ik5/kartina/render"
	"golang.org/x/sync/errgroup"
)

// Pipeline wires one encoded stream to a render state and an audio
// device: a decode goroutine publishes frames into a Channel that the
// render state drains on every redraw, while a playback goroutine decodes
// the same bytes again for the speakers.
//
// The caller owns the render loop. It drives State() from a window or the
// headless runner and calls Close when that loop ends.
type Pipeline struct {
	stream []byte
	format string

	reader *frame.PCMReader
	source *frame.Source
	ch     *frame.Channel
	state  *render.State
	driver *playback.Driver
	log    *slog.Logger

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	g       errgroup.Group
	done    chan struct{}
	summary frame.Summary
	err     error
}

type options struct {
	format    string
	name      string
	frameSize int
	mono      bool
	realtime  bool

	stacks, sectors int
	radius          float32
	flat            bool

	device   playback.Device
	registry *audio.Registry
	render   []render.Option
	log      *slog.Logger
	met      *observe.Metrics
}

type Option func(*options)

// WithFormat forces the decoder key instead of sniffing the stream.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithName gives the stream a file name whose extension is used when the
// content cannot be sniffed.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithFrameSize(n int) Option {
	return func(o *options) { o.frameSize = n }
}

// WithMono downmixes before framing.
func WithMono() Option {
	return func(o *options) { o.mono = true }
}

// WithRealtime paces frame publishing to the audio rate. Without it the
// stream is decoded as fast as possible.
func WithRealtime(on bool) Option {
	return func(o *options) { o.realtime = on }
}

// WithSphere sets the mesh resolution and size. flat gives every triangle
// its own vertices.
func WithSphere(stacks, sectors int, radius float32, flat bool) Option {
	return func(o *options) {
		o.stacks, o.sectors, o.radius, o.flat = stacks, sectors, radius, flat
	}
}

// WithDevice plays audio on d. The default discards it.
func WithDevice(d playback.Device) Option {
	return func(o *options) { o.device = d }
}

func WithRegistry(r *audio.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithRenderOptions passes options through to render.New.
func WithRenderOptions(opts ...render.Option) Option {
	return func(o *options) { o.render = append(o.render, opts...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithMetrics(m *observe.Metrics) Option {
	return func(o *options) { o.met = m }
}

// Open reads the file at path and builds a Pipeline around it. The file
// extension is the format fallback when the content cannot be sniffed.
func Open(path string, b render.Backend, opts ...Option) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStream, err)
	}
	return New(data, b, append([]Option{WithName(path)}, opts...)...)
}

// New builds a Pipeline around an encoded stream. The stream is decoded
// once here to check that it can be read at all; failures are reported as
// ErrOpenStream.
func New(stream []byte, b render.Backend, opts ...Option) (*Pipeline, error) {
	o := options{
		frameSize: frame.DefaultSize,
		stacks:    18,
		sectors:   36,
		radius:    0.1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	if o.met == nil {
		o.met = observe.Nop()
	}
	if o.registry == nil {
		o.registry = formats.NewRegistry()
	}
	if o.device == nil {
		o.device = playback.NewDiscard(playback.DefaultFormat)
	}

	if len(stream) == 0 {
		return nil, fmt.Errorf("%w: stream is empty", ErrOpenStream)
	}
	format := resolveFormat(stream, o.format, o.name)
	if format == "" {
		return nil, fmt.Errorf("%w: cannot tell the format of %q", ErrOpenStream, o.name)
	}

	src, err := o.registry.Decode(format, bytes.NewReader(stream))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStream, err)
	}
	var pcmOpts []frame.PCMOption
	pcmOpts = append(pcmOpts, frame.WithFrameSize(o.frameSize))
	if o.mono {
		pcmOpts = append(pcmOpts, frame.WithMono())
	}
	reader, err := frame.NewPCMReader(src, pcmOpts...)
	if err != nil {
		src.Close()
		return nil, err
	}

	m, err := mesh.Sphere(o.stacks, o.sectors, o.radius)
	if err != nil {
		reader.Close()
		return nil, err
	}
	if o.flat {
		m = m.Flatten()
	}

	ch := frame.NewChannel()
	srcOpts := []frame.SourceOption{frame.WithLogger(o.log), frame.WithMetrics(o.met)}
	if o.realtime {
		srcOpts = append(srcOpts, frame.WithRealtime())
	}
	renderOpts := append([]render.Option{render.WithLogger(o.log), render.WithMetrics(o.met)}, o.render...)

	o.log.Info("stream opened",
		"format", format, "bytes", len(stream),
		"sample_rate", src.SampleRate(), "channels", src.Channels(),
		"frame_size", reader.Size(), "realtime", o.realtime)

	return &Pipeline{
		stream: stream,
		format: format,
		reader: reader,
		source: frame.NewSource(reader, ch, srcOpts...),
		ch:     ch,
		state:  render.New(m, b, ch, renderOpts...),
		driver: playback.NewDriver(o.device, o.registry, playback.WithLogger(o.log), playback.WithMetrics(o.met)),
		log:    o.log,
		done:   make(chan struct{}),
	}, nil
}

// resolveFormat picks the decoder key: the forced one, then the sniffed
// container, then the file extension.
func resolveFormat(stream []byte, forced, name string) string {
	if forced != "" {
		return strings.ToLower(forced)
	}
	if f := formats.Detect(stream); f != "" {
		return f
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Start launches the decode and playback goroutines. They stop on their
// own when the stream ends, or when ctx is done or Close is called.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.closed:
		return ErrClosed
	case p.started:
		return ErrStarted
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)

	p.g.Go(func() error {
		sum, err := p.source.Run(ctx)
		p.mu.Lock()
		p.summary = sum
		p.mu.Unlock()
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	p.g.Go(func() error {
		err := p.driver.Play(ctx, p.stream, p.format)
		switch {
		case err == nil, errors.Is(err, context.Canceled), errors.Is(err, playback.ErrDeviceUnavailable):
			return nil
		}
		return fmt.Errorf("playback: %w", err)
	})
	go func() {
		err := p.g.Wait()
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	}()
	return nil
}

// Done is closed once both decoding and playback have finished.
func (p *Pipeline) Done() <-chan struct{} { return p.done }

// State is the render state to drive from a window or headless loop.
func (p *Pipeline) State() *render.State { return p.state }

func (p *Pipeline) Channel() *frame.Channel { return p.ch }

func (p *Pipeline) Format() string { return p.format }

// Summary returns what the decode goroutine did. It is complete after Done
// is closed.
func (p *Pipeline) Summary() frame.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary
}

// Close stops both goroutines, waits for them and releases the decoder.
// The returned error is the first decode or playback failure, if any;
// cancellation and a missing audio device are not failures.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	started := p.started
	cancel := p.cancel
	p.mu.Unlock()

	if started {
		cancel()
		<-p.done
	} else {
		close(p.done)
	}
	closeErr := p.reader.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Info("pipeline closed",
		"decoded", p.summary.Decoded, "skipped", p.summary.Skipped, "dropped", p.summary.Dropped)
	return errors.Join(p.err, closeErr)
}

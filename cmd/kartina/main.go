// SPDX-License-Identifier: EPL-2.0

// Command kartina spins a sphere colored by an audio file while playing it.
//
//	kartina [flags] [audio-file]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ik5/kartina"
	"github.com/ik5/kartina/colormap"
	"github.com/ik5/kartina/internal/config"
	"github.com/ik5/kartina/internal/headless"
	"github.com/ik5/kartina/internal/observe"
	"github.com/ik5/kartina/internal/window"
	"github.com/ik5/kartina/playback"
	"github.com/ik5/kartina/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type flags struct {
	config   string
	audio    string
	headless bool
	ticks    int
	mute     bool
	logLevel string
	set      map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("kartina", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "path to a YAML configuration file")
	fs.StringVar(&f.audio, "audio", "", "audio file to play (mp3, wav, ogg, aiff)")
	fs.BoolVar(&f.headless, "headless", false, "run without a window")
	fs.IntVar(&f.ticks, "ticks", 0, "stop a headless run after this many redraws (0: when the audio ends)")
	fs.BoolVar(&f.mute, "mute", false, "decode and render without sound")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: kartina [flags] [audio-file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	if fs.NArg() > 0 && !f.set["audio"] {
		f.audio = fs.Arg(0)
		f.set["audio"] = true
	}
	return f, nil
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig(f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if f.set["audio"] {
		cfg.Audio.Path = f.audio
	}
	if f.set["headless"] {
		cfg.Window.Headless = f.headless
	}
	if f.set["ticks"] {
		cfg.Window.Ticks = f.ticks
	}
	if f.set["mute"] {
		cfg.Playback.Mute = f.mute
	}
	if f.set["log-level"] {
		cfg.LogLevel = config.LogLevel(f.logLevel)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "kartina: invalid configuration: %v\n", err)
		return 1
	}
	if cfg.Audio.Path == "" {
		fmt.Fprintln(stderr, "kartina: no audio file given (pass it as an argument, -audio or KARTINA_AUDIO)")
		return 1
	}

	logger := newLogger(cfg.LogLevel, stderr)
	slog.SetDefault(logger)

	prov, err := observe.NewProvider()
	if err != nil {
		logger.Error("metrics unavailable", "err", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		prov.Summary(ctx, logger)
		if err := prov.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		backend render.Backend
		win     *window.Backend
	)
	if cfg.Window.Headless {
		backend = headless.NewRecorder()
	} else {
		win = window.NewBackend()
		backend = win
	}

	p, err := kartina.Open(cfg.Audio.Path, backend, pipelineOptions(cfg, prov.Metrics, logger)...)
	if err != nil {
		logger.Error("cannot start", "path", cfg.Audio.Path, "err", err)
		return 1
	}
	logger.Info("kartina starting",
		"path", cfg.Audio.Path, "format", p.Format(),
		"headless", cfg.Window.Headless, "mute", cfg.Playback.Mute)

	if err := p.Start(ctx); err != nil {
		logger.Error("cannot start pipeline", "err", err)
		return 1
	}

	if err := loop(ctx, cfg, p, win, logger); err != nil {
		logger.Warn("render loop ended with error", "err", err)
	}
	if err := p.Close(); err != nil {
		logger.Warn("pipeline finished with error", "err", err)
	}
	return 0
}

// loop drives the render state until the user or the audio ends the run.
func loop(ctx context.Context, cfg *config.Config, p *kartina.Pipeline, win *window.Backend, logger *slog.Logger) error {
	if win != nil {
		err := window.Run(ctx, p.State(), win, window.Config{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			TPS:    cfg.Window.TPS,
			Logger: logger,
		})
		if !errors.Is(err, window.ErrNoWindow) {
			return err
		}
		logger.Warn("no window available, running headless", "err", err)
	}

	hctx := ctx
	if cfg.Window.Ticks == 0 {
		var cancel context.CancelFunc
		hctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-p.Done():
				cancel()
			case <-hctx.Done():
			}
		}()
	}
	err := headless.Run(hctx, p.State(), headless.Config{
		Hz:     cfg.Window.TPS,
		Ticks:  uint64(cfg.Window.Ticks),
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Logger: logger,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func pipelineOptions(cfg *config.Config, met *observe.Metrics, logger *slog.Logger) []kartina.Option {
	format := playback.Format{SampleRate: cfg.Playback.SampleRate, Channels: cfg.Playback.Channels}
	var dev playback.Device
	if cfg.Playback.Mute {
		dev = playback.NewDiscard(format)
	} else {
		dev = playback.NewOtoDevice(format)
	}

	// Validate has already accepted the policy.
	policy, _ := colormap.ParsePolicy(cfg.Color.Policy)

	cam := render.DefaultCamera()
	cam.Eye = mgl32.Vec3(cfg.Camera.Eye)
	cam.Target = mgl32.Vec3(cfg.Camera.Target)
	cam.FovY = cfg.Camera.FovY
	cam.ZNear = cfg.Camera.ZNear
	cam.ZFar = cfg.Camera.ZFar
	cam.Aspect = float32(cfg.Window.Width) / float32(cfg.Window.Height)

	opts := []kartina.Option{
		kartina.WithFormat(cfg.Audio.Format),
		kartina.WithFrameSize(cfg.Frames.Size),
		kartina.WithRealtime(cfg.Frames.Realtime),
		kartina.WithSphere(cfg.Sphere.Stacks, cfg.Sphere.Sectors, cfg.Sphere.Radius, cfg.Sphere.Flat),
		kartina.WithDevice(dev),
		kartina.WithLogger(logger),
		kartina.WithMetrics(met),
		kartina.WithRenderOptions(
			render.WithMapper(colormap.Mapper{Policy: policy}),
			render.WithCamera(cam),
			render.WithRotationStep(cfg.Camera.RotationStep),
		),
	}
	if cfg.Frames.Mono {
		opts = append(opts, kartina.WithMono())
	}
	return opts
}

func newLogger(level config.LogLevel, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.Slog()}))
}

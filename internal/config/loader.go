// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ik5/kartina/colormap"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAudio    = "KARTINA_AUDIO"
	EnvLogLevel = "KARTINA_LOG_LEVEL"
	EnvHeadless = "KARTINA_HEADLESS"
	EnvMute     = "KARTINA_MUTE"
)

// Load reads the YAML file at path over the defaults and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over Default and validates the result.
// Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any KARTINA_* variables set in the
// environment. Boolean values that do not parse are reported.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup(EnvAudio); ok && v != "" {
		cfg.Audio.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = LogLevel(v)
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{EnvHeadless, &cfg.Window.Headless},
		{EnvMute, &cfg.Playback.Mute},
	}
	for _, f := range flags {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q is not a boolean", f.key, v))
			continue
		}
		*f.dst = b
	}
	return errors.Join(errs...)
}

// Validate checks that cfg is usable. It returns every problem found,
// joined.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.Frames.Size <= 0 {
		errs = append(errs, fmt.Errorf("frames.size must be positive, got %d", cfg.Frames.Size))
	}
	if cfg.Sphere.Stacks < 2 {
		errs = append(errs, fmt.Errorf("sphere.stacks must be at least 2, got %d", cfg.Sphere.Stacks))
	}
	if cfg.Sphere.Sectors < 3 {
		errs = append(errs, fmt.Errorf("sphere.sectors must be at least 3, got %d", cfg.Sphere.Sectors))
	}
	if !(cfg.Sphere.Radius > 0) {
		errs = append(errs, fmt.Errorf("sphere.radius must be positive, got %v", cfg.Sphere.Radius))
	}
	if _, err := colormap.ParsePolicy(cfg.Color.Policy); err != nil {
		errs = append(errs, fmt.Errorf("color.policy: %w", err))
	}
	if cfg.Camera.FovY <= 0 || cfg.Camera.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera.fovy %v is out of range (0, 180)", cfg.Camera.FovY))
	}
	if cfg.Camera.ZNear <= 0 || cfg.Camera.ZFar <= cfg.Camera.ZNear {
		errs = append(errs, fmt.Errorf("camera.znear %v and camera.zfar %v must satisfy 0 < znear < zfar", cfg.Camera.ZNear, cfg.Camera.ZFar))
	}
	if cfg.Camera.Eye == cfg.Camera.Target {
		errs = append(errs, errors.New("camera.eye and camera.target must differ"))
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height))
	}
	if cfg.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", cfg.Window.TPS))
	}
	if cfg.Window.Ticks < 0 {
		errs = append(errs, fmt.Errorf("window.ticks must not be negative, got %d", cfg.Window.Ticks))
	}
	if cfg.Playback.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("playback.sample_rate must be positive, got %d", cfg.Playback.SampleRate))
	}
	if cfg.Playback.Channels < 1 || cfg.Playback.Channels > 2 {
		errs = append(errs, fmt.Errorf("playback.channels must be 1 or 2, got %d", cfg.Playback.Channels))
	}

	return errors.Join(errs...)
}

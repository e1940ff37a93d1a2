// SPDX-License-Identifier: EPL-2.0

package config

import (
	"log/slog"
	"strings"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() bool {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l onto a slog level; unknown values map to Info.
func (l LogLevel) Slog() slog.Level {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the complete runtime configuration.
type Config struct {
	LogLevel LogLevel       `yaml:"log_level"`
	Audio    AudioConfig    `yaml:"audio"`
	Frames   FramesConfig   `yaml:"frames"`
	Sphere   SphereConfig   `yaml:"sphere"`
	Color    ColorConfig    `yaml:"color"`
	Camera   CameraConfig   `yaml:"camera"`
	Window   WindowConfig   `yaml:"window"`
	Playback PlaybackConfig `yaml:"playback"`
}

type AudioConfig struct {
	// Path of the encoded audio file.
	Path string `yaml:"path"`
	// Format forces a decoder key ("mp3", "wav", "ogg", "aiff"). Empty
	// means sniff the content, then fall back to the file extension.
	Format string `yaml:"format"`
}

type FramesConfig struct {
	// Size is the number of values per frame.
	Size int `yaml:"size"`
	// Mono downmixes before framing.
	Mono bool `yaml:"mono"`
	// Realtime paces decoding to the playback rate. Without it the whole
	// file is decoded at once and only the last frame is ever shown.
	Realtime bool `yaml:"realtime"`
}

type SphereConfig struct {
	Stacks  int     `yaml:"stacks"`
	Sectors int     `yaml:"sectors"`
	Radius  float32 `yaml:"radius"`
	// Flat gives each triangle its own vertices so shared corners do not
	// blend neighbouring colors.
	Flat bool `yaml:"flat"`
}

type ColorConfig struct {
	// Policy is "cycle" or "spread".
	Policy string `yaml:"policy"`
}

type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FovY   float32    `yaml:"fovy"`
	ZNear  float32    `yaml:"znear"`
	ZFar   float32    `yaml:"zfar"`
	// RotationStep is the model rotation per redraw in degrees.
	RotationStep float32 `yaml:"rotation_step"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TPS is the redraw rate in ticks per second.
	TPS int `yaml:"tps"`
	// Headless runs without a window.
	Headless bool `yaml:"headless"`
	// Ticks stops a headless run after this many redraws; 0 runs until the
	// audio ends.
	Ticks int `yaml:"ticks"`
}

type PlaybackConfig struct {
	Mute       bool `yaml:"mute"`
	SampleRate int  `yaml:"sample_rate"`
	Channels   int  `yaml:"channels"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Frames: FramesConfig{
			Size:     2304,
			Realtime: true,
		},
		Sphere: SphereConfig{
			Stacks:  18,
			Sectors: 36,
			Radius:  0.1,
		},
		Color: ColorConfig{Policy: "cycle"},
		Camera: CameraConfig{
			Eye:          [3]float32{0, 1, 2},
			FovY:         45,
			ZNear:        0.1,
			ZFar:         100,
			RotationStep: 2,
		},
		Window: WindowConfig{
			Title:  "kartina",
			Width:  800,
			Height: 600,
			TPS:    60,
		},
		Playback: PlaybackConfig{
			SampleRate: 48000,
			Channels:   2,
		},
	}
}

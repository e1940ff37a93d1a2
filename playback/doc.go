// SPDX-License-Identifier: EPL-2.0

// Package playback plays the audio that drives the sphere.
//
// The Driver decodes the encoded bytes independently of the frame
// decoder, so what is heard and what is drawn only share the input. The
// decoded source is resampled and remixed to the device Format and
// streamed as float32 little-endian PCM.
//
// # Devices
//
// OtoDevice plays through github.com/ebitengine/oto/v3 and needs cgo on
// Linux; without it Play fails with ErrNoAudioBackend. Discard consumes
// the stream without output and backs mute mode.
//
// Failing to start a device is never fatal: the Driver logs it once and
// returns ErrDeviceUnavailable so the caller can carry on silently.
package playback

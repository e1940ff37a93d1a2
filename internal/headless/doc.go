// SPDX-License-Identifier: EPL-2.0

// Package headless drives a render state without opening a window.
//
// Run replaces the window event loop with a ticker: it calls Init, reports a
// fixed surface size once, then calls OnRedraw at the configured rate.
// Recorder is a backend that keeps the uploaded colors so runs can be
// inspected, which makes the pair useful on servers, in CI and in tests.
package headless

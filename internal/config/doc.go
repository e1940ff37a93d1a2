// SPDX-License-Identifier: EPL-2.0

// Package config loads kartina's YAML configuration.
//
// Every field has a default (see Default), so a file only needs the keys it
// changes:
//
//	log_level: debug
//	audio:
//	  path: song.mp3
//	sphere:
//	  stacks: 24
//	  flat: true
//
// KARTINA_AUDIO, KARTINA_LOG_LEVEL, KARTINA_HEADLESS and KARTINA_MUTE
// override the file when applied with ApplyEnv; command line flags
// override both.
package config

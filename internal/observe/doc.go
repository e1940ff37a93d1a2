// SPDX-License-Identifier: EPL-2.0

// Package observe defines kartina's OpenTelemetry instruments.
//
// Components take a *Metrics and record on it; a nil option falls back to
// Nop. The binary builds a Provider, whose manual reader lets the totals be
// logged once at shutdown:
//
//	prov, _ := observe.NewProvider()
//	defer prov.Shutdown(ctx)
//	// ... hand prov.Metrics to the pipeline ...
//	prov.Summary(ctx, slog.Default())
package observe

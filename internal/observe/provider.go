// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"fmt"
	"log/slog"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider is an in-process meter provider read on demand. Nothing is
// exported over the network; totals are pulled with Totals or logged by
// Summary.
type Provider struct {
	Metrics *Metrics

	reader *sdkmetric.ManualReader
	mp     *sdkmetric.MeterProvider
}

func NewProvider() (*Provider, error) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	met, err := NewMetrics(mp)
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return nil, fmt.Errorf("creating instruments: %w", err)
	}
	return &Provider{Metrics: met, reader: reader, mp: mp}, nil
}

// Totals collects every counter summed over its attribute sets, keyed by
// instrument name. Histograms report their observation count.
func (p *Provider) Totals(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += int64(dp.Count)
				}
			}
		}
	}
	return totals, nil
}

// Summary logs the current totals at Info.
func (p *Provider) Summary(ctx context.Context, log *slog.Logger) {
	totals, err := p.Totals(ctx)
	if err != nil {
		log.Warn("metrics summary unavailable", "err", err)
		return
	}
	log.Info("run summary",
		"decoded", totals[FramesDecoded],
		"skipped", totals[FramesSkipped],
		"dropped", totals[FramesDropped],
		"redraws", totals[RenderRedraws],
		"color_updates", totals[RenderColorUpdate],
		"render_errors", totals[RenderErrors],
		"playback_errors", totals[PlaybackErrors],
	)
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.mp.Shutdown(ctx)
}

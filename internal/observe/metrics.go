// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/ik5/kartina"

// Instrument names.
const (
	FramesDecoded     = "kartina.frames.decoded"
	FramesSkipped     = "kartina.frames.skipped"
	FramesDropped     = "kartina.frames.dropped"
	RenderRedraws     = "kartina.render.redraws"
	RenderColorUpdate = "kartina.render.color_updates"
	RenderErrors      = "kartina.render.errors"
	PlaybackErrors    = "kartina.playback.errors"
	MapDuration       = "kartina.render.map.duration"
)

// Render error stages, recorded as the "stage" attribute of RenderErrors.
const (
	StageMap    = "map"
	StageUpload = "upload"
	StageDraw   = "draw"
)

// Metrics holds every instrument kartina records. The zero value is not
// usable; build one with NewMetrics or Nop.
type Metrics struct {
	// FramesDecoded counts frames published to the frame channel.
	FramesDecoded metric.Int64Counter

	// FramesSkipped counts frames that failed to decode.
	FramesSkipped metric.Int64Counter

	// FramesDropped counts frames overwritten before the renderer took them.
	FramesDropped metric.Int64Counter

	Redraws      metric.Int64Counter
	ColorUpdates metric.Int64Counter

	// RenderErrors counts backend failures. Use with attribute "stage".
	RenderErrors metric.Int64Counter

	PlaybackErrors metric.Int64Counter

	// MapDuration tracks how long mapping a frame onto the mesh takes.
	MapDuration metric.Float64Histogram
}

// mapBuckets covers mapping times from tens of microseconds up to a
// whole 60 Hz tick.
var mapBuckets = []float64{
	0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.0167,
}

// NewMetrics creates all instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&met.FramesDecoded, FramesDecoded, "Frames published to the renderer."},
		{&met.FramesSkipped, FramesSkipped, "Frames skipped because they failed to decode."},
		{&met.FramesDropped, FramesDropped, "Frames replaced before the renderer consumed them."},
		{&met.Redraws, RenderRedraws, "Redraw ticks handled."},
		{&met.ColorUpdates, RenderColorUpdate, "Vertex color buffer uploads."},
		{&met.RenderErrors, RenderErrors, "Backend failures by stage."},
		{&met.PlaybackErrors, PlaybackErrors, "Playback failures."},
	}
	for _, c := range counters {
		if *c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	if met.MapDuration, err = m.Float64Histogram(MapDuration,
		metric.WithDescription("Time spent mapping a frame onto vertex colors."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(mapBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	nopMetrics     *Metrics
	nopMetricsOnce sync.Once
)

// Nop returns a shared Metrics whose instruments discard everything.
func Nop() *Metrics {
	nopMetricsOnce.Do(func() {
		var err error
		nopMetrics, err = NewMetrics(noop.NewMeterProvider())
		if err != nil {
			panic("observe: noop instruments: " + err.Error())
		}
	})
	return nopMetrics
}

// RecordRenderError counts one backend failure at stage.
func (m *Metrics) RecordRenderError(ctx context.Context, stage string) {
	m.RenderErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"solarflight/sim"
)

const instrumentationName = "solarflight/telemetry"

// Meter returns the meter from the global OTel provider (no-op if not configured)
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// FrameMetrics records per-frame simulation counters
type FrameMetrics struct {
	frames     metric.Int64Counter
	stepTime   metric.Float64Histogram
	collisions metric.Int64Counter
	locks      metric.Int64Counter
	arrivals   metric.Int64Counter
}

// NewFrameMetrics creates the instruments on m
func NewFrameMetrics(m metric.Meter) (*FrameMetrics, error) {
	fm := &FrameMetrics{}
	var err error

	fm.frames, err = m.Int64Counter(
		"sim.frames",
		metric.WithDescription("Total simulation steps"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	fm.stepTime, err = m.Float64Histogram(
		"sim.step.duration",
		metric.WithDescription("Wall time spent in one simulation step"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating step duration histogram: %w", err)
	}

	fm.collisions, err = m.Int64Counter(
		"sim.collisions",
		metric.WithDescription("Frames in which the spacecraft touched a body surface"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}

	fm.locks, err = m.Int64Counter(
		"sim.autopilot.locks",
		metric.WithDescription("Autopilot target selections"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating locks counter: %w", err)
	}

	fm.arrivals, err = m.Int64Counter(
		"sim.autopilot.arrivals",
		metric.WithDescription("Autopilot locks released on arrival"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating arrivals counter: %w", err)
	}

	return fm, nil
}

// RecordStep records one step's duration and outcome
func (fm *FrameMetrics) RecordStep(ctx context.Context, elapsed time.Duration, r sim.Report) {
	fm.frames.Add(ctx, 1)
	fm.stepTime.Record(ctx, float64(elapsed.Microseconds())/1000)
	if r.Collisions > 0 {
		fm.collisions.Add(ctx, int64(r.Collisions))
	}
	if r.Arrived {
		fm.arrivals.Add(ctx, 1)
	}
}

// RecordLock records a target selection
func (fm *FrameMetrics) RecordLock(ctx context.Context, target string) {
	fm.locks.Add(ctx, 1, metric.WithAttributes(attribute.String("target", target)))
}

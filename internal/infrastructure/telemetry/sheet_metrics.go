package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrOutcome = attribute.Key("outcome")
	AttrPhase   = attribute.Key("phase")
	AttrResult  = attribute.Key("result")
)

// Generation outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeBusy      = "busy"
)

// SheetDurationBuckets are bucket boundaries for generation phases (seconds)
var SheetDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

// SheetMetrics instruments catalog sheet generation
type SheetMetrics struct {
	generations   *Counter
	images        *Counter
	duration      *Histogram
	phaseDuration *Histogram
	pages         *Histogram
}

// NewSheetMetrics registers the sheet instruments on meter
func NewSheetMetrics(meter metric.Meter) (*SheetMetrics, error) {
	var (
		m   SheetMetrics
		err error
	)
	if m.generations, err = NewCounter(meter, "catalog_sheet_generations_total",
		"Catalog sheet generation attempts by outcome", "{generations}"); err != nil {
		return nil, err
	}
	if m.images, err = NewCounter(meter, "catalog_sheet_images_total",
		"Item images resolved during generation by result", "{images}"); err != nil {
		return nil, err
	}
	if m.duration, err = NewHistogram(meter, "catalog_sheet_generation_duration_seconds",
		"End to end catalog sheet generation time", "s", SheetDurationBuckets...); err != nil {
		return nil, err
	}
	if m.phaseDuration, err = NewHistogram(meter, "catalog_sheet_phase_duration_seconds",
		"Time spent per generation phase", "s", SheetDurationBuckets...); err != nil {
		return nil, err
	}
	if m.pages, err = NewHistogram(meter, "catalog_sheet_pages",
		"Pages per generated catalog sheet", "{pages}", 1, 2, 3, 5, 8, 13, 21); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordGeneration records one finished attempt. A nil receiver is a no-op.
func (m *SheetMetrics) RecordGeneration(ctx context.Context, outcome string, elapsed time.Duration, pages int) {
	if m == nil {
		return
	}
	m.generations.Inc(ctx, AttrOutcome.String(outcome))
	m.duration.RecordDuration(ctx, elapsed, AttrOutcome.String(outcome))
	if outcome == OutcomeSuccess {
		m.pages.Record(ctx, float64(pages))
	}
}

// RecordPhase records the duration of one phase (fetch, render, finalize)
func (m *SheetMetrics) RecordPhase(ctx context.Context, phase string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.RecordDuration(ctx, elapsed, AttrPhase.String(phase))
}

// RecordImages records how many images were embedded and how many were missing
func (m *SheetMetrics) RecordImages(ctx context.Context, embedded, missing int) {
	if m == nil {
		return
	}
	m.images.Add(ctx, int64(embedded), AttrResult.String("embedded"))
	m.images.Add(ctx, int64(missing), AttrResult.String("missing"))
}

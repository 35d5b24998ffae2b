package pipeline

import (
	"context"
	"log/slog"

	"github.com/enterstudio/location-normalizer/internal/domain"
	"github.com/enterstudio/location-normalizer/internal/observability"
)

// RecordTransformer implements Transformer by parsing raw messages and
// running location enrichment.
type RecordTransformer struct {
	resolver *domain.Resolver
	index    domain.IndexFunc
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a RecordTransformer. Pass a nil resolver to disable
// location enrichment, and a nil index to disable re-index notifications.
func NewTransformer(resolver *domain.Resolver, index domain.IndexFunc, logger *slog.Logger, metrics *observability.Metrics) *RecordTransformer {
	return &RecordTransformer{
		resolver: resolver,
		index:    index,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *RecordTransformer) Transform(ctx context.Context, raw domain.RawRecord) (domain.EntityRecord, error) {
	rec, err := domain.ParseRawRecord(raw)
	if err != nil {
		return domain.EntityRecord{}, err
	}

	rec = domain.EnrichWithLocation(ctx, rec, t.resolver, t.index)
	t.observeResolution(rec)
	return rec, nil
}

// observeResolution records the per-record resolution outcome. A fallback is
// a record that kept a place but scored zero (geocode-only match).
func (t *RecordTransformer) observeResolution(rec domain.EntityRecord) {
	if t.metrics == nil || t.resolver == nil || rec.Location == "" {
		return
	}

	kind := string(rec.Kind)
	switch {
	case rec.NormalizedLocation == nil:
		t.metrics.ResolutionOutcome.WithLabelValues(kind, "unresolved").Inc()
	case rec.LocationScore == 0:
		t.metrics.ResolutionOutcome.WithLabelValues(kind, "fallback").Inc()
	default:
		t.metrics.ResolutionOutcome.WithLabelValues(kind, "resolved").Inc()
		t.metrics.ResolutionScore.WithLabelValues(kind).Observe(rec.LocationScore)
	}
}

package domain

import "context"

const (
	// teamScoreFloor discards team matches below this score before falling
	// back; a wrong school is worse than no school.
	teamScoreFloor = 0.7

	// healthyScore splits the final-score log between info and warning.
	healthyScore = 0.8
)

// IndexFunc receives records whose normalized location changed so the search
// subsystem can re-index them. Invoked fire-and-forget; implementations own
// their error handling.
type IndexFunc func(rec EntityRecord)

// EnrichWithLocation resolves a record's location, attaches the normalized
// result and timezone, and stamps the processing time. A nil resolver
// disables resolution (the record passes through untouched except for the
// stamp). Resolution failures degrade to an absent normalized location
// rather than an error.
func EnrichWithLocation(ctx context.Context, rec EntityRecord, r *Resolver, index IndexFunc) EntityRecord {
	rec.ProcessedAt = clock.Now()
	if r == nil || rec.Location == "" {
		return rec
	}

	q := rec.LocationQuery()

	var (
		info  LocationInfo
		score float64
	)
	if rec.Kind == KindTeam {
		info, score = r.ResolveTeamLocation(ctx, q)
	} else {
		info, score = r.ResolveEventLocation(ctx, q)
	}

	logAttrs := []any{"kind", string(rec.Kind), "key", rec.Key, "score", score}
	if score >= healthyScore {
		r.logger.Info("location resolved", logAttrs...)
	} else {
		r.logger.Warn("low confidence location", logAttrs...)
	}

	if rec.Kind == KindTeam && score < teamScoreFloor && !info.IsEmpty() {
		r.logger.Warn("location score below floor, discarding", "key", rec.Key, "score", score)
		info = LocationInfo{}
		score = 0
	}

	if info.IsEmpty() && rec.Kind == KindEvent {
		r.logger.Warn("falling back to geocode of raw location", "key", rec.Key)
		info = r.geocodeFallback(ctx, rec.Location)
	}

	if info.IsEmpty() {
		r.logger.Warn("location resolution failed", "kind", string(rec.Kind), "key", rec.Key)
		return rec
	}

	rec.NormalizedLocation = &info
	rec.LocationScore = score
	rec.Timezone = r.ResolveTimezone(ctx, rec.Location, info.LatLng)
	if index != nil {
		index(rec)
	}
	return rec
}

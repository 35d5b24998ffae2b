package domain

import (
	"context"
	"log/slog"
	"math"
	"strings"
)

const (
	// rankDiscount is applied per result position within one query's result
	// list: the provider's own relevance ordering is worth trusting, so a
	// lower-ranked result must win by a margin.
	rankDiscount = 0.7

	// maxResultsPerQuery caps how deep into one query's result list the
	// backlog walk goes.
	maxResultsPerQuery = 5

	// teamAcceptScore short-circuits team resolution: a single-result match
	// this strong beats consulting ambiguous multi-result queries.
	teamAcceptScore = 0.9
)

// TimezoneFinder resolves coordinates to an IANA timezone id without a
// remote call. Used as a fallback when the provider's timezone lookup fails.
type TimezoneFinder interface {
	TimezoneName(lat, lng float64) (string, error)
}

// Resolver picks the single most plausible real-world place for an event or
// team. It holds no state between resolution requests.
type Resolver struct {
	places     PlacesAPI
	tzFallback TimezoneFinder
	logger     *slog.Logger
}

// NewResolver creates a Resolver. tzFallback may be nil to disable offline
// timezone lookups.
func NewResolver(places PlacesAPI, tzFallback TimezoneFinder, logger *slog.Logger) *Resolver {
	return &Resolver{
		places:     places,
		tzFallback: tzFallback,
		logger:     logger,
	}
}

// queryResults defers a multi-result query for the backlog walk.
type queryResults struct {
	query   string
	results []SearchCandidate
}

// ResolveEventLocation resolves an event's location and returns the best
// candidate with its score. The empty record with score 0 means nothing
// matched; it is never an error.
func (r *Resolver) ResolveEventLocation(ctx context.Context, q LocationQuery) (LocationInfo, float64) {
	if q.Location == "" {
		return LocationInfo{}, 0
	}
	bias := r.locationBias(ctx, q.Location)
	if bias == nil {
		return LocationInfo{}, 0
	}

	score := func(_ string, info LocationInfo) float64 {
		return ScoreEventCandidate(q, info)
	}

	best, bestScore, backlog, done := r.walkQueries(ctx, EventQueries(q), bias, score)
	if done {
		return best, bestScore
	}
	return r.walkBacklog(ctx, backlog, score, best, bestScore)
}

// ResolveTeamLocation resolves a team's location. Teams get two extra
// fallback searches (the raw location string, then "{city} {country}") when
// the derived queries produce no backlog at all.
func (r *Resolver) ResolveTeamLocation(ctx context.Context, q LocationQuery) (LocationInfo, float64) {
	if q.Location == "" {
		return LocationInfo{}, 0
	}
	bias := r.locationBias(ctx, q.Location)
	if bias == nil {
		return LocationInfo{}, 0
	}

	score := func(query string, info LocationInfo) float64 {
		return ScoreTeamCandidate(query, q, info)
	}

	best, bestScore, backlog, done := r.walkQueries(ctx, TeamQueries(q), bias, score)
	if done {
		return best, bestScore
	}
	if bestScore > teamAcceptScore {
		return best, bestScore
	}
	if len(backlog) == 0 {
		for _, fallback := range teamFallbackQueries(q) {
			if results := r.searchSoft(ctx, fallback, bias, SearchText); len(results) > 0 {
				backlog = append(backlog, queryResults{query: fallback, results: results})
			}
		}
	}
	return r.walkBacklog(ctx, backlog, score, best, bestScore)
}

// walkQueries runs the per-query fast path: single-result queries are scored
// immediately (a perfect score returns done=true), multi-result queries are
// deferred to the backlog in order.
func (r *Resolver) walkQueries(ctx context.Context, queries []string, bias *LatLng, score func(string, LocationInfo) float64) (LocationInfo, float64, []queryResults, bool) {
	var (
		best      LocationInfo
		bestScore float64
		backlog   []queryResults
	)
	for _, query := range queries {
		for _, results := range r.searchBothModes(ctx, query, bias) {
			switch {
			case len(results) == 1:
				info := r.buildLocationInfo(ctx, results[0])
				s := score(query, info)
				if s == 1 {
					// A single unambiguous result with a perfect field
					// comparison is trusted outright.
					return info, s, nil, true
				}
				if s > bestScore {
					best, bestScore = info, s
				}
			case len(results) > 1:
				backlog = append(backlog, queryResults{query: query, results: results})
			}
		}
	}
	return best, bestScore, backlog, false
}

// walkBacklog evaluates deferred multi-result queries in order, discounting
// each result by its rank within its own list. Earlier queries win ties
// because later candidates must strictly beat the running best.
func (r *Resolver) walkBacklog(ctx context.Context, backlog []queryResults, score func(string, LocationInfo) float64, best LocationInfo, bestScore float64) (LocationInfo, float64) {
	for _, qr := range backlog {
		results := qr.results
		if len(results) > maxResultsPerQuery {
			results = results[:maxResultsPerQuery]
		}
		for i, c := range results {
			info := r.buildLocationInfo(ctx, c)
			s := score(qr.query, info) * math.Pow(rankDiscount, float64(i))
			if s == 1 {
				return info, s
			}
			if s > bestScore {
				best, bestScore = info, s
			}
		}
	}
	return best, bestScore
}

// searchBothModes issues the nearby and text searches for one query
// concurrently and returns both result lists, nearby first.
func (r *Resolver) searchBothModes(ctx context.Context, query string, bias *LatLng) [][]SearchCandidate {
	textCh := make(chan []SearchCandidate, 1)
	go func() {
		textCh <- r.searchSoft(ctx, query, bias, SearchText)
	}()
	nearby := r.searchSoft(ctx, query, bias, SearchNearby)
	return [][]SearchCandidate{nearby, <-textCh}
}

// searchSoft converts any provider error into an empty result so callers can
// fall through to their next tier.
func (r *Resolver) searchSoft(ctx context.Context, query string, bias *LatLng, mode SearchMode) []SearchCandidate {
	results, err := r.places.PlaceSearch(ctx, query, bias, mode)
	if err != nil {
		r.logger.Warn("place search failed", "mode", string(mode), "query", query, "error", err)
		return nil
	}
	return results
}

// locationBias geocodes the raw location string to anchor the place
// searches. nil means the location could not be placed at all.
func (r *Resolver) locationBias(ctx context.Context, location string) *LatLng {
	results, err := r.places.Geocode(ctx, location)
	if err != nil {
		r.logger.Warn("geocode failed", "location", location, "error", err)
		return nil
	}
	if len(results) == 0 || results[0].Location == nil {
		return nil
	}
	return results[0].Location
}

// geocodeFallback wraps the first geocode result for an address as a
// location record, used when no place search produced anything.
func (r *Resolver) geocodeFallback(ctx context.Context, address string) LocationInfo {
	results, err := r.places.Geocode(ctx, address)
	if err != nil {
		r.logger.Warn("fallback geocode failed", "location", address, "error", err)
		return LocationInfo{}
	}
	if len(results) == 0 {
		return LocationInfo{}
	}
	return r.buildLocationInfo(ctx, results[0])
}

// teamFallbackQueries returns the last-resort searches for a team: the raw
// location string, then city and country.
func teamFallbackQueries(q LocationQuery) []string {
	queries := []string{q.Location}
	if cityCountry := strings.TrimSpace(strings.TrimSpace(q.City) + " " + strings.TrimSpace(q.Country)); cityCountry != "" {
		queries = append(queries, cityCountry)
	}
	return queries
}

package domain

import "context"

// SearchMode selects the provider's place search variant. Nearby search
// matches on a keyword around the bias point; text search ranks free-form
// queries globally.
type SearchMode string

const (
	SearchNearby SearchMode = "nearbysearch"
	SearchText   SearchMode = "textsearch"
)

// PlacesAPI is the boundary to the remote geocoding/places provider.
//
// Implementations return an empty slice (not an error) for a clean
// zero-results response. Transport and provider failures are returned as
// errors; the resolver converts them to empty results and keeps walking its
// fallback tiers.
type PlacesAPI interface {
	// PlaceSearch runs a place search for the query, optionally biased
	// around a coordinate. Results come back best-match-first, capped by the
	// provider to a small page.
	PlaceSearch(ctx context.Context, query string, bias *LatLng, mode SearchMode) ([]SearchCandidate, error)

	// PlaceDetails fetches the detailed address breakdown for a place id.
	// Returns (nil, nil) when the provider has no details for the id.
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)

	// Geocode converts a free-text address to candidate places with
	// coordinates. Geocode results carry no display name.
	Geocode(ctx context.Context, address string) ([]SearchCandidate, error)

	// TimezoneLookup returns the IANA timezone id for a coordinate, or ""
	// when the provider cannot determine one.
	TimezoneLookup(ctx context.Context, loc LatLng) (string, error)
}

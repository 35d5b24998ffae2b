package domain

import "context"

// ResolveTimezone returns the IANA timezone id for a coordinate pair, or for
// a free-text location geocoded first when latLng is nil. Returns "" when
// the timezone cannot be determined; never an error. Timezone lookups happen
// once per entity location, not per fan-out query.
func (r *Resolver) ResolveTimezone(ctx context.Context, location string, latLng *LatLng) string {
	if latLng == nil {
		results, err := r.places.Geocode(ctx, location)
		if err != nil || len(results) == 0 || results[0].Location == nil {
			return ""
		}
		latLng = results[0].Location
	}

	id, err := r.places.TimezoneLookup(ctx, *latLng)
	if err != nil {
		r.logger.Warn("timezone lookup failed", "lat", latLng.Lat, "lng", latLng.Lng, "error", err)
	} else if id != "" {
		return id
	}

	if r.tzFallback != nil {
		if id, ferr := r.tzFallback.TimezoneName(latLng.Lat, latLng.Lng); ferr == nil {
			return id
		}
	}
	return ""
}

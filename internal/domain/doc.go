// Package domain models competition event and team records and resolves
// their loosely structured location descriptions to real-world places.
//
// # Input Data
//
// Upstream sync services publish event and team records to the source topic
// as flat JSON. Location data in those records is user-entered and messy:
//
//	Venue:         free-text venue name, e.g. "Jacob K. Javits Convention Center"
//	Venue address: multi-line block where the venue occupies at most the first
//	               two lines and the street address follows, e.g.
//	               "Javits Center\n655 W 34th St\nNew York, NY 10001"
//	Team name:     a slash- or ampersand-delimited list of sponsors usually
//	               ending in the school name, e.g.
//	               "NASA/Boeing & Central High School"
//	Location:      free-text "city, state, country" string
//
// None of these fields is reliable on its own, so resolution fans out over
// several candidate queries derived from them, scores every returned place
// against the structured fields, and keeps the best match.
//
// # Resolution Tiers
//
// A resolution request walks ordered fallback tiers until a perfect match
// short-circuits or the candidates run out:
//
//  1. Derive candidate queries from venue/address lines (events) or name
//     fragments (teams); skip entirely when the record has no location.
//  2. Run each query through nearby and text place searches. A query with a
//     single result is scored immediately; a perfect score is returned on
//     the spot.
//  3. Queries with several results are deferred to a backlog, preserving
//     query order, and evaluated with a per-rank discount afterwards.
//  4. Teams only: a strong match (>0.9) skips the backlog, and an empty
//     backlog triggers fallback searches for the raw location string and
//     "{city} {country}".
//  5. Events only: if nothing matched at all, the caller wraps the first
//     geocode result for the raw location as a coordinate-only record.
//
// Every remote failure is soft: provider errors become empty result sets and
// a warning, never an error that stops the tier walk.
package domain

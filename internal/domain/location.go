package domain

import "encoding/json"

// LatLng is a WGS-84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchCandidate is one raw, undecomposed result from a place search or
// geocode call. It is the input to detail fetching and scoring and is never
// persisted directly.
type SearchCandidate struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Location         *LatLng
	Types            []string
}

// AddressComponent is one entry of the provider's decomposed address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// PlaceDetails is the detailed payload behind a place id. Raw carries the
// provider's full response so nothing is lost when new fields appear.
type PlaceDetails struct {
	FormattedAddress  string
	AddressComponents []AddressComponent
	Raw               json.RawMessage
}

// LocationInfo is the resolved, normalized place record written onto an
// entity. Coordinates are present together or not at all. Immutable after
// construction.
type LocationInfo struct {
	PlaceID          string          `json:"place_id,omitempty"`
	Name             string          `json:"name,omitempty"`
	FormattedAddress string          `json:"formatted_address,omitempty"`
	LatLng           *LatLng         `json:"lat_lng,omitempty"`
	StreetNumber     string          `json:"street_number,omitempty"`
	Street           string          `json:"street,omitempty"`
	City             string          `json:"city,omitempty"`
	StateProv        string          `json:"state_prov,omitempty"`
	StateProvShort   string          `json:"state_prov_short,omitempty"`
	Country          string          `json:"country,omitempty"`
	CountryShort     string          `json:"country_short,omitempty"`
	PostalCode       string          `json:"postal_code,omitempty"`
	Types            []string        `json:"types,omitempty"`
	PlaceDetails     json.RawMessage `json:"place_details,omitempty"`
}

// IsEmpty reports whether the record carries no place at all.
func (l LocationInfo) IsEmpty() bool {
	return l.PlaceID == "" && l.Name == "" && l.FormattedAddress == "" && l.LatLng == nil
}

// HasType reports whether the provider tagged the place with the given type.
func (l LocationInfo) HasType(t string) bool {
	for _, pt := range l.Types {
		if pt == t {
			return true
		}
	}
	return false
}

// LocationQuery is an immutable snapshot of an entity's raw location fields
// taken at resolution time.
type LocationQuery struct {
	Kind         EntityKind
	Key          string // entity identifier, used for log tagging only
	Name         string // team display name (sponsors/school)
	Venue        string
	VenueAddress string
	City         string
	StateProv    string
	PostalCode   string
	Country      string
	Location     string // raw free-text location
}

package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// EntityKind distinguishes the two record types the resolver handles.
type EntityKind string

const (
	KindEvent EntityKind = "event"
	KindTeam  EntityKind = "team"
)

// RawRecord is an unprocessed message from the source topic.
type RawRecord struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// EntityRecord is an event or team record with its raw location fields and,
// after enrichment, the resolved normalized location.
type EntityRecord struct {
	Kind         EntityKind `json:"kind"`
	Key          string     `json:"key"`
	Name         string     `json:"name,omitempty"`
	Venue        string     `json:"venue,omitempty"`
	VenueAddress string     `json:"venue_address,omitempty"`
	City         string     `json:"city,omitempty"`
	StateProv    string     `json:"state_prov,omitempty"`
	PostalCode   string     `json:"postal_code,omitempty"`
	Country      string     `json:"country,omitempty"`
	Location     string     `json:"location,omitempty"`

	// Enrichment output.
	NormalizedLocation *LocationInfo `json:"normalized_location,omitempty"`
	LocationScore      float64       `json:"location_score,omitempty"`
	Timezone           string        `json:"timezone,omitempty"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ParseRawRecord deserializes a RawRecord's value into an EntityRecord. The
// sync services publish flat JSON with a kind discriminator.
func ParseRawRecord(raw RawRecord) (EntityRecord, error) {
	var rec EntityRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return EntityRecord{}, fmt.Errorf("parse raw record: %w", err)
	}
	switch rec.Kind {
	case KindEvent, KindTeam:
	default:
		return EntityRecord{}, fmt.Errorf("unknown record kind %q", rec.Kind)
	}
	if rec.Key == "" {
		return EntityRecord{}, fmt.Errorf("record has no key")
	}
	rec.NormalizedLocation = nil
	rec.LocationScore = 0
	rec.Timezone = ""
	rec.RawPayload = raw.Value
	return rec, nil
}

// LocationQuery snapshots the record's raw location fields for resolution.
func (rec EntityRecord) LocationQuery() LocationQuery {
	return LocationQuery{
		Kind:         rec.Kind,
		Key:          rec.Key,
		Name:         rec.Name,
		Venue:        rec.Venue,
		VenueAddress: rec.VenueAddress,
		City:         rec.City,
		StateProv:    rec.StateProv,
		PostalCode:   rec.PostalCode,
		Country:      rec.Country,
		Location:     rec.Location,
	}
}

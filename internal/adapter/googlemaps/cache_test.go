package googlemaps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enterstudio/location-normalizer/internal/domain"
)

// --- mock for cache tests ---

type countingPlaces struct {
	searchCalls   int
	detailsCalls  int
	geocodeCalls  int
	timezoneCalls int

	searchResults []domain.SearchCandidate
	searchErr     error
	details       *domain.PlaceDetails
}

func (m *countingPlaces) PlaceSearch(_ context.Context, _ string, _ *domain.LatLng, _ domain.SearchMode) ([]domain.SearchCandidate, error) {
	m.searchCalls++
	return m.searchResults, m.searchErr
}

func (m *countingPlaces) PlaceDetails(_ context.Context, _ string) (*domain.PlaceDetails, error) {
	m.detailsCalls++
	return m.details, nil
}

func (m *countingPlaces) Geocode(_ context.Context, _ string) ([]domain.SearchCandidate, error) {
	m.geocodeCalls++
	return m.searchResults, nil
}

func (m *countingPlaces) TimezoneLookup(_ context.Context, _ domain.LatLng) (string, error) {
	m.timezoneCalls++
	return "America/Chicago", nil
}

// --- CachedPlaces tests ---

func TestCachedPlaces_SearchCacheHit(t *testing.T) {
	inner := &countingPlaces{
		searchResults: []domain.SearchCandidate{{PlaceID: "p1", Name: "Cow Palace"}},
	}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	r1, err := cached.PlaceSearch(context.Background(), "Cow Palace", nil, domain.SearchText)
	require.NoError(t, err)
	assert.Equal(t, "Cow Palace", r1[0].Name)

	r2, err := cached.PlaceSearch(context.Background(), "Cow Palace", nil, domain.SearchText)
	require.NoError(t, err)
	assert.Equal(t, "Cow Palace", r2[0].Name)

	assert.Equal(t, 1, inner.searchCalls, "should only call inner once")
}

func TestCachedPlaces_ModesCachedSeparately(t *testing.T) {
	inner := &countingPlaces{}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	_, _ = cached.PlaceSearch(context.Background(), "Cow Palace", nil, domain.SearchText)
	_, _ = cached.PlaceSearch(context.Background(), "Cow Palace", nil, domain.SearchNearby)

	assert.Equal(t, 2, inner.searchCalls)
}

func TestCachedPlaces_BiasPartOfKey(t *testing.T) {
	inner := &countingPlaces{}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	_, _ = cached.PlaceSearch(context.Background(), "City Hall", &domain.LatLng{Lat: 39.78, Lng: -89.65}, domain.SearchText)
	_, _ = cached.PlaceSearch(context.Background(), "City Hall", &domain.LatLng{Lat: 37.77, Lng: -122.42}, domain.SearchText)

	assert.Equal(t, 2, inner.searchCalls)
}

func TestCachedPlaces_EmptyResultsCached(t *testing.T) {
	inner := &countingPlaces{}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	r1, err := cached.PlaceSearch(context.Background(), "No Such Venue", nil, domain.SearchText)
	require.NoError(t, err)
	assert.Empty(t, r1)

	_, err = cached.PlaceSearch(context.Background(), "No Such Venue", nil, domain.SearchText)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.searchCalls, "empty result should be served from cache")
}

func TestCachedPlaces_ErrorsNotCached(t *testing.T) {
	inner := &countingPlaces{searchErr: errors.New("quota")}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	_, err := cached.PlaceSearch(context.Background(), "Cow Palace", nil, domain.SearchText)
	require.Error(t, err)

	inner.searchErr = nil
	_, err = cached.PlaceSearch(context.Background(), "Cow Palace", nil, domain.SearchText)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.searchCalls, "error should not have been cached")
}

func TestCachedPlaces_DetailsCacheHit(t *testing.T) {
	inner := &countingPlaces{details: &domain.PlaceDetails{FormattedAddress: "somewhere"}}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	_, err := cached.PlaceDetails(context.Background(), "p1")
	require.NoError(t, err)
	_, err = cached.PlaceDetails(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.detailsCalls)
}

func TestCachedPlaces_GeocodeCacheHit(t *testing.T) {
	inner := &countingPlaces{}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	_, _ = cached.Geocode(context.Background(), "Springfield, IL")
	_, _ = cached.Geocode(context.Background(), "Springfield, IL")

	assert.Equal(t, 1, inner.geocodeCalls)
}

func TestCachedPlaces_TimezoneNotCached(t *testing.T) {
	inner := &countingPlaces{}
	cached := NewCachedPlaces(inner, 10, testMetrics())

	loc := domain.LatLng{Lat: 39.78, Lng: -89.65}
	_, _ = cached.TimezoneLookup(context.Background(), loc)
	_, _ = cached.TimezoneLookup(context.Background(), loc)

	assert.Equal(t, 2, inner.timezoneCalls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", "A")
	c.put("b", "B")

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", "A")
	c.put("b", "B")
	c.put("c", "C") // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", v)

	v, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", v)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", "A")
	c.put("b", "B")

	// Access "a" to promote it
	c.get("a")

	// Inserting "c" should evict "b", not the freshly used "a"
	c.put("c", "C")

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", "A1")
	c.put("a", "A2")

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", v)
}

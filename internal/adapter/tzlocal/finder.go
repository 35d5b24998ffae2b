package tzlocal

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

// Finder resolves coordinates to IANA timezone ids from embedded timezone
// polygons, with no network call. It backs the resolver when the remote
// timezone API is unavailable.
type Finder struct {
	finder tzf.F
}

var (
	instance *Finder
	once     sync.Once
	initErr  error
)

// NewFinder creates or returns the singleton Finder. Singleton because tzf
// loads its polygon data into memory once per process.
func NewFinder() (*Finder, error) {
	once.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("initialize timezone finder: %w", err)
			return
		}
		instance = &Finder{finder: f}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// TimezoneName returns the IANA timezone id for the given coordinates, e.g.
// "America/Chicago".
func (f *Finder) TimezoneName(lat, lng float64) (string, error) {
	// tzf takes longitude first.
	tz := f.finder.GetTimezoneName(lng, lat)
	if tz == "" {
		return "", fmt.Errorf("no timezone for coordinates lat=%f, lng=%f", lat, lng)
	}
	return tz, nil
}

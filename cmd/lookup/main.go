// Command lookup resolves a single event or team location from the command
// line and prints the enriched record as JSON. Useful for checking what the
// pipeline would produce for a given record without running Kafka.
//
// Usage:
//
//	GOOGLE_MAPS_API_KEY=... go run ./cmd/lookup \
//	  -kind event -key 2026ilch \
//	  -venue "Springfield High School" \
//	  -city Springfield -state IL -country USA \
//	  -location "Springfield, IL, USA"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/enterstudio/location-normalizer/internal/adapter/googlemaps"
	"github.com/enterstudio/location-normalizer/internal/adapter/tzlocal"
	"github.com/enterstudio/location-normalizer/internal/domain"
	"github.com/enterstudio/location-normalizer/internal/observability"
)

func main() {
	kind := flag.String("kind", "event", "record kind: event or team")
	key := flag.String("key", "", "entity key, e.g. 2026ilch or frc254")
	name := flag.String("name", "", "team display name")
	venue := flag.String("venue", "", "event venue name")
	venueAddress := flag.String("venue-address", "", "multi-line venue address (use \\n between lines)")
	city := flag.String("city", "", "city")
	state := flag.String("state", "", "state or province")
	postal := flag.String("postal", "", "postal code")
	country := flag.String("country", "", "country")
	location := flag.String("location", "", "raw free-text location")
	timeout := flag.Duration("timeout", 30*time.Second, "total resolution timeout")
	verbose := flag.Bool("v", false, "log resolution steps to stderr")
	flag.Parse()

	if *key == "" || *location == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *kind != string(domain.KindEvent) && *kind != string(domain.KindTeam) {
		fmt.Fprintln(os.Stderr, "-kind must be event or team")
		os.Exit(1)
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	resolver := buildResolver(logger)

	rec := domain.EntityRecord{
		Kind:         domain.EntityKind(*kind),
		Key:          *key,
		Name:         *name,
		Venue:        *venue,
		VenueAddress: *venueAddress,
		City:         *city,
		StateProv:    *state,
		PostalCode:   *postal,
		Country:      *country,
		Location:     *location,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	enriched := domain.EnrichWithLocation(ctx, rec, resolver, nil)

	out, err := json.MarshalIndent(enriched, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode result:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if enriched.NormalizedLocation == nil {
		os.Exit(2)
	}
}

func buildResolver(logger *slog.Logger) *domain.Resolver {
	metrics := observability.NewMetrics()

	keys := googlemaps.EnvKey("GOOGLE_MAPS_API_KEY")
	client := googlemaps.NewClient(keys, 10*time.Second, logger, metrics)
	places := googlemaps.NewCachedPlaces(client, 128, metrics)

	var tzFallback domain.TimezoneFinder
	if finder, err := tzlocal.NewFinder(); err == nil {
		tzFallback = finder
	} else {
		logger.Warn("offline timezone fallback unavailable", "error", err)
	}

	return domain.NewResolver(places, tzFallback, logger)
}

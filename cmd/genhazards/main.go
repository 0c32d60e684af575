// Command genhazards generates a deterministic hazard snapshot fixture
// around a center coordinate, for seeding local development and the
// integration tests. Output goes to a JSON file and, with -publish, to the
// configured Kafka topic.
//
// Usage:
//
//	go run ./cmd/genhazards \
//	  -center-lat 29.7604 -center-lng -95.3698 \
//	  -count 25 -radius-km 10 \
//	  -out data/mock/hazards_houston.json \
//	  -publish
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	kafkaadapter "github.com/couchcryptid/flood-route-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/flood-route-advisor/internal/config"
	"github.com/couchcryptid/flood-route-advisor/internal/geo"
	"github.com/couchcryptid/flood-route-advisor/internal/hazards"
	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/risk"
)

var generatedAt = time.Date(2026, time.August, 30, 6, 0, 0, 0, time.UTC)

var factorPool = []string{
	"heavy rainfall",
	"rising creek levels",
	"poor drainage",
	"low-lying roadway",
	"upstream reservoir release",
	"saturated ground",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	centerLat := flag.Float64("center-lat", 29.7604, "center latitude")
	centerLng := flag.Float64("center-lng", -95.3698, "center longitude")
	count := flag.Int("count", 25, "number of hazard segments")
	radiusKm := flag.Float64("radius-km", 10, "spread radius in km")
	seed := flag.Int64("seed", 1, "random seed, fixed for reproducible fixtures")
	out := flag.String("out", "", "output path for the snapshot JSON fixture")
	publish := flag.Bool("publish", false, "also publish to the configured Kafka topic")
	flag.Parse()

	if *out == "" && !*publish {
		flag.Usage()
		return fmt.Errorf("nothing to do: pass -out and/or -publish")
	}

	center := geo.Coordinate{Lat: *centerLat, Lng: *centerLng}
	if err := center.Validate(); err != nil {
		return err
	}

	update := generate(center, *count, *radiusKm, *seed)
	log.Printf("generated %d segments around (%.4f, %.4f)", len(update.Segments), center.Lat, center.Lng)

	if *out != "" {
		if err := writeJSON(*out, update); err != nil {
			return fmt.Errorf("writing fixture: %w", err)
		}
		log.Printf("wrote fixture: %s", *out)
	}

	if *publish {
		if err := publishUpdate(update); err != nil {
			return fmt.Errorf("publishing fixture: %w", err)
		}
	}
	return nil
}

// generate spreads segments uniformly within the radius. The fixed seed and
// frozen timestamps make output byte-stable across runs.
func generate(center geo.Coordinate, count int, radiusKm float64, seed int64) hazards.Update {
	rng := rand.New(rand.NewSource(seed))

	segments := make([]risk.HazardSegment, count)
	for i := range segments {
		// Uniform offset inside the radius; 1 degree latitude ~= 111km.
		distKm := radiusKm * math.Sqrt(rng.Float64())
		bearing := rng.Float64() * 2 * math.Pi
		latOffset := (distKm / 111.0) * math.Cos(bearing)
		lngOffset := (distKm / (111.0 * math.Cos(center.Lat*math.Pi/180))) * math.Sin(bearing)

		score := math.Round(rng.Float64()*100) / 100

		factorCount := 1 + rng.Intn(2)
		factors := make([]string, factorCount)
		for j := range factors {
			factors[j] = factorPool[rng.Intn(len(factorPool))]
		}

		segments[i] = risk.HazardSegment{
			Location: geo.Coordinate{
				Lat: center.Lat + latOffset,
				Lng: center.Lng + lngOffset,
			},
			RiskScore:      score,
			RiskLevel:      risk.LevelFromScore(score),
			KeyFactors:     factors,
			PredictionTime: generatedAt.Add(time.Duration(1+rng.Intn(3)) * time.Hour),
		}
	}

	return hazards.Update{GeneratedAt: generatedAt, Segments: segments}
}

func writeJSON(path string, update hazards.Update) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(update, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func publishUpdate(update hazards.Update) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	writer := kafkaadapter.NewWriter(cfg, logger)
	defer writer.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := writer.PublishUpdate(ctx, update); err != nil {
		return err
	}
	log.Printf("published snapshot to %s", cfg.KafkaHazardTopic)
	return nil
}

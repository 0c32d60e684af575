package risk

import (
	"fmt"
	"strings"
	"time"
)

// Summary aggregates hazard segments into an overall route risk.
type Summary struct {
	RiskLevel        Level           `json:"risk_level"`
	BadgeClass       string          `json:"badge_class"`
	AvgRiskScore     float64         `json:"avg_risk_score"`
	MaxRiskScore     float64         `json:"max_risk_score"`
	Warnings         []string        `json:"warnings"`
	AffectedSegments []HazardSegment `json:"affected_segments"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// Summarize aggregates the hazard list into a route-level risk summary.
//
// The overall level derives from the arithmetic mean of all risk scores (zero
// for an empty list) using the standard thresholds. Warnings carry one entry
// per medium or high hazard. AffectedSegments is the full input list,
// unfiltered; narrowing to medium/high happens in the rendering layer.
func Summarize(hazards []HazardSegment) Summary {
	s := Summary{
		Warnings:         []string{},
		AffectedSegments: hazards,
		GeneratedAt:      clock.Now(),
	}
	if s.AffectedSegments == nil {
		s.AffectedSegments = []HazardSegment{}
	}

	var total float64
	for _, h := range hazards {
		total += h.RiskScore
		if h.RiskScore > s.MaxRiskScore {
			s.MaxRiskScore = h.RiskScore
		}
		if h.RiskLevel == LevelMedium || h.RiskLevel == LevelHigh {
			s.Warnings = append(s.Warnings, warningFor(h))
		}
	}
	if len(hazards) > 0 {
		s.AvgRiskScore = total / float64(len(hazards))
	}

	s.RiskLevel = LevelFromScore(s.AvgRiskScore)
	s.BadgeClass = s.RiskLevel.BadgeClass()
	return s
}

// warningFor renders a single hazard warning for display.
func warningFor(h HazardSegment) string {
	factors := "multiple risk factors"
	if len(h.KeyFactors) > 0 {
		factors = strings.Join(h.KeyFactors, ", ")
	}
	return fmt.Sprintf("%s flood risk near (%.4f, %.4f): %s",
		h.RiskLevel, h.Location.Lat, h.Location.Lng, factors)
}

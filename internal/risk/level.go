// Package risk classifies flood hazard severity along driving routes.
//
// # Thresholds
//
// Risk scores are probabilities in [0,1] produced by the external flood
// prediction service and consumed as-is. The score-to-level cut points
// (0.70 high, 0.40 medium) and the 0.5 km hazard-proximity radius are wire
// contract with the prediction service and the rendering frontend; changing
// them breaks behavioral compatibility.
//
// # Ordering
//
// Step annotation assigns the level of the first hazard (in slice order)
// within the proximity radius, not the nearest one. Hazard slice order is
// therefore part of the behavior and is preserved from the feed.
package risk

// Level is a three-step flood risk classification.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Fixed thresholds shared with the prediction service and frontend.
const (
	// HighScoreThreshold is the minimum risk score classified as high.
	HighScoreThreshold = 0.70
	// MediumScoreThreshold is the minimum risk score classified as medium.
	MediumScoreThreshold = 0.40
	// ProximityRadiusKm is the distance within which a hazard affects a route step.
	ProximityRadiusKm = 0.5
)

// LevelFromScore derives the risk level from a [0,1] risk score.
// Boundary values classify upward: exactly 0.70 is high, exactly 0.40 is medium.
func LevelFromScore(score float64) Level {
	switch {
	case score >= HighScoreThreshold:
		return LevelHigh
	case score >= MediumScoreThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// BadgeClass returns the frontend badge CSS class for the level. The class
// names are part of the rendering contract.
func (l Level) BadgeClass() string {
	switch l {
	case LevelHigh:
		return "bg-danger"
	case LevelMedium:
		return "bg-warning"
	default:
		return "bg-success"
	}
}

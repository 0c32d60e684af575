package risk

import (
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/geo"
)

// HazardSegment is one geographic point flagged by the flood prediction
// service, with its predicted risk and the factors behind it. Instances are
// transient: created per feed update, discarded once rendered.
type HazardSegment struct {
	Location       geo.Coordinate `json:"location"`
	RiskLevel      Level          `json:"risk_level"`
	RiskScore      float64        `json:"risk_score"`
	KeyFactors     []string       `json:"key_factors,omitempty"`
	PredictionTime time.Time      `json:"prediction_time"`
}

package risk

import (
	"github.com/couchcryptid/flood-route-advisor/internal/geo"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

// AnnotateSteps assigns a risk level to each route step by proximity to the
// given hazards. The returned map has one entry per step, keyed by the step's
// position in the slice.
//
// A step takes the level of the first hazard within ProximityRadiusKm of its
// start coordinate, scanning hazards in slice order. Steps with no hazard in
// range are low. Both inputs are immutable snapshots; the call has no side
// effects.
func AnnotateSteps(steps []route.Step, hazards []HazardSegment) map[int]Level {
	annotations := make(map[int]Level, len(steps))
	for i, step := range steps {
		annotations[i] = stepLevel(step.Start, hazards)
	}
	return annotations
}

// stepLevel returns the level of the first hazard within range of the point,
// or low when none is.
func stepLevel(point geo.Coordinate, hazards []HazardSegment) Level {
	for _, hazard := range hazards {
		if geo.Distance(point, hazard.Location) < ProximityRadiusKm {
			return hazard.RiskLevel
		}
	}
	return LevelLow
}

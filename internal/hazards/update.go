package hazards

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/risk"
)

// Update is one snapshot message from the prediction service's feed topic.
type Update struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Segments    []risk.HazardSegment `json:"segments"`
}

// RawMessage is an unprocessed message from the feed topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// ParseUpdate deserializes and sanitizes a feed message.
//
// Segments with out-of-range coordinates are dropped (their count is
// returned for metrics) rather than poisoning distance math with garbage.
// Each surviving segment's level is rederived from its score so the
// score-determines-level invariant holds regardless of what the producer
// sent. Segment order is preserved.
func ParseUpdate(value []byte) (Update, int, error) {
	var u Update
	if err := json.Unmarshal(value, &u); err != nil {
		return Update{}, 0, fmt.Errorf("parse hazard update: %w", err)
	}

	kept := make([]risk.HazardSegment, 0, len(u.Segments))
	dropped := 0
	for _, seg := range u.Segments {
		if err := seg.Location.Validate(); err != nil {
			dropped++
			continue
		}
		seg.RiskLevel = risk.LevelFromScore(seg.RiskScore)
		kept = append(kept, seg)
	}
	u.Segments = kept
	return u, dropped, nil
}

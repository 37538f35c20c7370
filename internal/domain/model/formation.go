package model

import (
	"fmt"
	"strings"
	"time"
)

// FormationType selects the partition strategy.
type FormationType string

// Supported formation types.
const (
	FormationSimilar FormationType = "similar"
	FormationDiverse FormationType = "diverse"
)

// String implements fmt.Stringer.
func (t FormationType) String() string { return string(t) }

// Valid reports whether t is a known formation type.
func (t FormationType) Valid() bool {
	return t == FormationSimilar || t == FormationDiverse
}

// ParseFormationType parses a formation type (case-insensitive).
func ParseFormationType(s string) (FormationType, error) {
	t := FormationType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown formation type %q", s)
	}
	return t, nil
}

// FormationRequest carries the per-request parameters of a formation run.
type FormationRequest struct {
	SquadSize     int           `json:"squadSize" validate:"gt=0"`
	FormationType FormationType `json:"formationType" validate:"oneof=similar diverse"`
}

// Partition is an ordered list of squads, each a list of participant ids.
type Partition [][]string

// Size returns the total number of members across all squads.
func (p Partition) Size() int {
	n := 0
	for _, squad := range p {
		n += len(squad)
	}
	return n
}

// Clone returns a deep copy.
func (p Partition) Clone() Partition {
	out := make(Partition, len(p))
	for i, squad := range p {
		out[i] = append([]string(nil), squad...)
	}
	return out
}

// Squad is a persisted team created from one partition entry.
type Squad struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Members       []string      `json:"members"`
	FormationType FormationType `json:"formationType"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// FormationOutcome is the persisted result of one formation request.
type FormationOutcome struct {
	Squads     []Squad `json:"squads"`
	FellBack   bool    `json:"fallback"`
	Reassigned int     `json:"reassigned"`
	Coverage   []int   `json:"coverage,omitempty"` // distinct categories per squad
}

// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// AttendanceStatus is the check-in state recorded by the participant store.
type AttendanceStatus string

// Attendance states. Only StatusPresent makes a participant eligible for formation.
const (
	StatusRegistered AttendanceStatus = "registered"
	StatusPresent    AttendanceStatus = "present"
	StatusAbsent     AttendanceStatus = "absent"
)

// ParseAttendanceStatus parses a status string (case-insensitive).
// An empty string maps to StatusRegistered.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch AttendanceStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusRegistered:
		return StatusRegistered, nil
	case StatusPresent:
		return StatusPresent, nil
	case StatusAbsent:
		return StatusAbsent, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
}

// Participant is an event attendee as seen by the formation engine.
type Participant struct {
	ID        string  // unique, immutable identifier
	Name      string  // display name; never read by the engine
	SkillsRaw *string // free-text skills, may be nil
}

// Skills returns the raw skills text, or "" when unset.
func (p Participant) Skills() string {
	if p.SkillsRaw == nil {
		return ""
	}
	return *p.SkillsRaw
}

// NewParticipant builds a participant with the given skills text.
func NewParticipant(id, skills string) Participant {
	return Participant{ID: id, SkillsRaw: &skills}
}

// Package parser turns the compact command-line notation of the simulate
// command into payload structures.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironiq/gymtap/internal/models"
)

// ParseSessionEntry parses one session spec of the form
//
//	role:sessionId[:sets]
//
// where role is active|last|older (or the wire codes b|c|d) and sets is a
// comma-separated list like "135x10,135x8". A "?" weight means the machine
// could not measure it.
//
// Examples:
//
//	active:AB12C3
//	last:AB12C3:135x10,135x8
//	c:AB12C3:?x12
func ParseSessionEntry(input string) (models.SessionEntry, error) {
	parts := strings.SplitN(strings.TrimSpace(input), ":", 3)
	if len(parts) < 2 {
		return models.SessionEntry{}, fmt.Errorf("session spec %q: want role:sessionId[:sets]", input)
	}

	role, err := parseRole(parts[0])
	if err != nil {
		return models.SessionEntry{}, fmt.Errorf("session spec %q: %w", input, err)
	}

	sessionID := strings.TrimSpace(parts[1])
	if sessionID == "" {
		return models.SessionEntry{}, fmt.Errorf("session spec %q: empty session id", input)
	}

	entry := models.SessionEntry{Role: role, SessionID: sessionID, Sets: []models.Set{}}
	if len(parts) == 3 && parts[2] != "" {
		sets, err := ParseSets(parts[2])
		if err != nil {
			return models.SessionEntry{}, fmt.Errorf("session spec %q: %w", input, err)
		}
		entry.Sets = sets
	}
	return entry, nil
}

// ParseSets parses a comma-separated set list like "135x10,135x8".
func ParseSets(input string) ([]models.Set, error) {
	var sets []models.Set
	for _, raw := range strings.Split(input, ",") {
		set, err := parseSet(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// parseSet parses one "weightxreps" pair. Weight "?" maps to the unknown
// sentinel.
func parseSet(raw string) (models.Set, error) {
	weightStr, repsStr, ok := strings.Cut(raw, "x")
	if !ok {
		return models.Set{}, fmt.Errorf("set %q: want weightxreps", raw)
	}

	weight := models.WeightUnknown
	if weightStr != "?" {
		w, err := strconv.Atoi(weightStr)
		if err != nil {
			return models.Set{}, fmt.Errorf("set %q: invalid weight: %w", raw, err)
		}
		weight = w
	}

	reps, err := strconv.Atoi(repsStr)
	if err != nil {
		return models.Set{}, fmt.Errorf("set %q: invalid reps: %w", raw, err)
	}
	if reps <= 0 {
		return models.Set{}, fmt.Errorf("set %q: reps must be positive", raw)
	}

	return models.Set{WeightLbs: weight, Reps: reps}, nil
}

func parseRole(raw string) (models.Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", string(models.RoleActive):
		return models.RoleActive, nil
	case "last", "completed", string(models.RoleLastCompleted):
		return models.RoleLastCompleted, nil
	case "older", "old", string(models.RoleOlder):
		return models.RoleOlder, nil
	default:
		return "", fmt.Errorf("unknown role %q (want active, last or older)", raw)
	}
}

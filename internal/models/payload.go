package models

import (
	"encoding/json"
	"fmt"
)

// Role classifies a session entry on the tag.
type Role string

const (
	RoleActive        Role = "b" // session currently running on the machine
	RoleLastCompleted Role = "c" // most recently finished session
	RoleOlder         Role = "d" // anything older
)

// Valid reports whether r is one of the three role codes the tag may carry.
func (r Role) Valid() bool {
	return r == RoleActive || r == RoleLastCompleted || r == RoleOlder
}

// WeightUnknown is the sentinel a machine writes when it could not measure
// the loaded weight. It is distinct from 0 and must survive decoding and
// matching untouched; only display code maps it to a concrete value.
const WeightUnknown = -1

// Set is a single set of an exercise: weight on the machine and rep count.
// Weight is always carried in lbs on the wire.
type Set struct {
	WeightLbs int `json:"weight_lbs"`
	Reps      int `json:"reps"`
}

// MarshalJSON encodes the set in its compact tuple form [weightLbs, reps].
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.WeightLbs, s.Reps})
}

// UnmarshalJSON decodes the compact tuple form [weightLbs, reps].
func (s *Set) UnmarshalJSON(data []byte) error {
	var tuple []int
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("set must be a [weight, reps] pair: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("set must have exactly 2 elements, got %d", len(tuple))
	}
	s.WeightLbs = tuple[0]
	s.Reps = tuple[1]
	return nil
}

// SessionEntry is one candidate session enumerated by the tag.
type SessionEntry struct {
	Role      Role
	SessionID string
	Sets      []Set
}

// MarshalJSON encodes the entry in its compact tuple form
// [role, sessionId, [[weight, reps], ...]].
func (e SessionEntry) MarshalJSON() ([]byte, error) {
	sets := e.Sets
	if sets == nil {
		sets = []Set{}
	}
	return json.Marshal([3]any{string(e.Role), e.SessionID, sets})
}

// UnmarshalJSON decodes the compact tuple form.
func (e *SessionEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("session entry must be a tuple: %w", err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("session entry must have exactly 3 elements, got %d", len(tuple))
	}

	var role string
	if err := json.Unmarshal(tuple[0], &role); err != nil {
		return fmt.Errorf("session role: %w", err)
	}
	if !Role(role).Valid() {
		return fmt.Errorf("unknown session role %q", role)
	}
	if err := json.Unmarshal(tuple[1], &e.SessionID); err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &e.Sets); err != nil {
		return fmt.Errorf("session sets: %w", err)
	}

	e.Role = Role(role)
	return nil
}

// CompactPayload is the size-minimized JSON document carried on a tag.
// It is produced fresh on every successful read and never persisted verbatim.
type CompactPayload struct {
	MachineID     string         `json:"m"`
	MachineType   string         `json:"t"`
	NextSessionID string         `json:"a"`
	Sessions      []SessionEntry `json:"s"`
}

// Equal reports whether two payloads carry identical tag contents.
// Used to detect a duplicate tap (same tag read twice in a row).
func (p *CompactPayload) Equal(other *CompactPayload) bool {
	if p == nil || other == nil {
		return false
	}
	if p.MachineID != other.MachineID || p.NextSessionID != other.NextSessionID {
		return false
	}
	a, err := json.Marshal(p.Sessions)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other.Sessions)
	if err != nil {
		return false
	}
	return string(a) == string(b)
}

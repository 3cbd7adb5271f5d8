package workout

import "github.com/ironiq/gymtap/internal/models"

// Match resolves the remembered session id against a freshly read payload.
// It returns the first entry whose id matches AND whose sets are non-empty;
// an entry with no sets has not produced usable workout data yet (the
// machine may not have finished writing the tag).
//
// Pure and total: no state, no side effects.
func Match(payload *models.CompactPayload, sessionID string) (models.SessionEntry, bool) {
	if payload == nil || sessionID == "" {
		return models.SessionEntry{}, false
	}
	for _, entry := range payload.Sessions {
		if entry.SessionID == sessionID && len(entry.Sets) > 0 {
			return entry, true
		}
	}
	return models.SessionEntry{}, false
}

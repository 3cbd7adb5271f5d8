// Package identity answers one question for the rest of the app: who is
// the current user. Storage of accounts and any login flow live elsewhere.
package identity

import "errors"

// ErrUnauthenticated means no user identity is configured for a write that
// requires one.
var ErrUnauthenticated = errors.New("not signed in")

// Identity is the identity collaborator consumed by the workout tracker.
type Identity interface {
	CurrentUserID() (string, error)
}

// Static is an Identity backed by a fixed user id, typically taken from the
// local profile. An empty id reports ErrUnauthenticated.
type Static struct {
	UserID string
}

func (s Static) CurrentUserID() (string, error) {
	if s.UserID == "" {
		return "", ErrUnauthenticated
	}
	return s.UserID, nil
}

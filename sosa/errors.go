package sosa

import (
	"errors"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/store"
)

// Errors returned by entity and relationship operations. A failed operation
// leaves both the store and the membership lists unchanged.
var (
	// ErrRoleMismatch is returned when an argument does not have the role the
	// operation expects.
	ErrRoleMismatch = errors.New("role mismatch")

	// ErrNotAMember is returned when removing something that is not recorded.
	ErrNotAMember = errors.New("not a member")

	// ErrAlreadyMember is returned when adding something already recorded.
	ErrAlreadyMember = errors.New("already a member")

	// ErrAlreadyHosted is returned when the entity is already attached to
	// another host or owner.
	ErrAlreadyHosted = errors.New("already attached elsewhere")

	// ErrSessionClosed is returned by every operation on a closed session.
	ErrSessionClosed = errors.New("session closed")

	// ErrStaleEntity is returned when an entity created before a Reset is
	// used to write to the graph.
	ErrStaleEntity = errors.New("entity predates session reset")

	// ErrInvalidIdentifier is returned for empty or malformed identifiers.
	ErrInvalidIdentifier = identifier.ErrInvalid

	// ErrStoreWrite is returned when the store rejects a batch.
	ErrStoreWrite = store.ErrWrite

	// ErrUnsupportedLiteral is returned for result values with no literal form.
	ErrUnsupportedLiteral = store.ErrUnsupportedLiteral
)

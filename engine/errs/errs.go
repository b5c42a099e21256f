// Package errs defines the error taxonomy for the Storycore engine.
// Every error here is a displayable, in-fiction sentence: front-ends can
// print err.Error() directly. Callers distinguish kinds with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidInput is returned for empty or unparseable input.
	ErrInvalidInput = errors.New("I don't understand that.")

	// ErrInvalidVerb is returned when the first token is not a known verb.
	ErrInvalidVerb = errors.New("I don't know how to do that.")

	// ErrInvalidSubject is returned when a handler needs a subject and
	// the action carries none.
	ErrInvalidSubject = errors.New("I don't see that here.")

	// ErrInvalidItem is returned when the engine is asked to reference an
	// item that does not exist in the catalog.
	ErrInvalidItem = errors.New("I don't see that here.")

	// ErrInvalidDirection is returned when a movement action carries no
	// usable direction.
	ErrInvalidDirection = errors.New("You can't go that way.")

	// ErrInvalidMovement is returned when the current room has no exit in
	// the requested direction.
	ErrInvalidMovement = errors.New("You can't go that way.")

	// ErrInvalidRoom signals a dangling room reference. With a validated
	// catalog this indicates corrupted state, but it is still returned,
	// not panicked, per the engine's no-abort contract.
	ErrInvalidRoom = errors.New("You are nowhere you recognize.")

	// ErrInvalidNarrative signals a dangling narrative reference.
	ErrInvalidNarrative = errors.New("There is nothing to tell here.")

	// ErrInvalidEvent is returned when no event matches the action. This
	// is the stock "that made no sense in this room" response.
	ErrInvalidEvent = errors.New("You can't do that.")

	// ErrCantPick is returned when the item is present but not pickable.
	ErrCantPick = errors.New("You can't pick that up.")

	// ErrNoItem is returned when a pick or removal targets an item that
	// is not actually held or available.
	ErrNoItem = errors.New("You don't have that.")

	// ErrRequiredEventNotCompleted is returned when a matching event
	// exists but its prerequisites are unmet. Recoverable and
	// player-actionable: something else needs to be done first.
	ErrRequiredEventNotCompleted = errors.New("Maybe something else needs to be done first.")
)

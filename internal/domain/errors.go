package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrNoPayload is returned when the upstream source yields no usable
	// response body (network failure, timeout or non-success status)
	ErrNoPayload = errors.New("no payload obtained from source")

	// ErrDuplicatePeriod is returned when a draw for the same
	// (period, game) pair already exists. This is an idempotent re-entry
	// signal, not a failure.
	ErrDuplicatePeriod = errors.New("draw period already exists")

	// ErrDrawNotFound is returned when a draw is not found
	ErrDrawNotFound = errors.New("draw not found")

	// ErrPredictionNotFound is returned when no prediction exists for a period
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrPredictionVerified is returned when attempting to regenerate a
	// prediction that has already been verified against a real outcome
	ErrPredictionVerified = errors.New("prediction already verified")

	// ErrUnknownGame is returned for an unrecognized game type
	ErrUnknownGame = errors.New("unknown game type")
)

// ParseError is a hard parse failure of an upstream result page. It
// carries a short diagnostic fragment so alerts are actionable without
// shipping the whole payload.
type ParseError struct {
	Game     GameType
	Reason   string
	Fragment string
}

func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("parse %s result: %s", e.Game, e.Reason)
	}
	return fmt.Sprintf("parse %s result: %s (near %q)", e.Game, e.Reason, e.Fragment)
}

// NewParseError creates a ParseError with an optional payload fragment
func NewParseError(game GameType, reason string, fragment string) *ParseError {
	const maxFragment = 120
	if len(fragment) > maxFragment {
		// Fragments are page text and may be Vietnamese, so cut on a
		// rune boundary rather than mid-sequence.
		cut := maxFragment
		for cut > 0 && !utf8.RuneStart(fragment[cut]) {
			cut--
		}
		fragment = fragment[:cut]
	}
	return &ParseError{Game: game, Reason: reason, Fragment: fragment}
}

// IsParseError reports whether err is (or wraps) a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

package settlement

import "errors"

// Recoverable grading conditions. None of these abort a settlement pass;
// they are accumulated into the pass report and the affected legs stay
// pending for the next pass (or for manual review).
var (
	// ErrUnresolvedGame means the linked game is missing or not yet final.
	// Retried automatically on the next pass.
	ErrUnresolvedGame = errors.New("linked game missing or not final")

	// ErrAmbiguousSelection means the selection could not be resolved to
	// exactly one gradable outcome. Surfaced for manual review, never guessed.
	ErrAmbiguousSelection = errors.New("selection cannot be resolved to one side")

	// ErrIncompleteParlay means at least one sibling leg is not yet
	// resolvable, so the whole parlay is deferred.
	ErrIncompleteParlay = errors.New("parlay has unresolvable legs")
)

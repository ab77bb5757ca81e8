package interview

import "errors"

var (
	// ErrNoQuestions aborts a start when the filtered pool is empty.
	// Nothing is registered when start fails this way.
	ErrNoQuestions = errors.New("no questions available for the requested domain")

	// ErrSessionNotFound means the session id is unknown or pruned.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotInProgress rejects answer operations outside InProgress.
	ErrNotInProgress = errors.New("session is not in progress")

	// ErrNotComplete rejects finalize before the session completes.
	ErrNotComplete = errors.New("session is not complete")

	// ErrSubmissionInFlight rejects a submit while another is pending on
	// the same session. Submissions serialize; they never interleave.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrSubmissionStale is returned when the session was ended or reset
	// while the oracle call was out; the late result is discarded.
	ErrSubmissionStale = errors.New("session changed while scoring; result discarded")
)

package voting

import "errors"

var (
	ErrNotFound         = errors.New("target not found")
	ErrSelfVote         = errors.New("cannot vote on your own content")
	ErrPermission       = errors.New("permission denied")
	ErrInvalidTarget    = errors.New("answer does not belong to question")
	ErrInvalidDirection = errors.New("invalid vote type")
	ErrInvalidKind      = errors.New("invalid target kind")

	// ErrUndefinedTransition means a caller built a transition the tables do not cover.
	ErrUndefinedTransition = errors.New("undefined vote transition")

	// ErrTransient wraps persistence failures. Operations that fail with it
	// rolled back completely and may be retried.
	ErrTransient = errors.New("temporary storage failure")
)

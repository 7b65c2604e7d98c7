package voting

import "fmt"

// Direction is the vote an identity currently holds on a target.
type Direction string

const (
	None Direction = ""
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts the request spellings "upvote"/"downvote" and the
// short forms "up"/"down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "upvote", "up":
		return Up, nil
	case "downvote", "down":
		return Down, nil
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Public returns the wire form used in API responses. None maps to nil.
func (d Direction) Public() *string {
	var s string
	switch d {
	case Up:
		s = "upvote"
	case Down:
		s = "downvote"
	default:
		return nil
	}
	return &s
}

// TargetKind distinguishes the two votable entities.
type TargetKind string

const (
	KindQuestion TargetKind = "question"
	KindAnswer   TargetKind = "answer"
)

func ParseKind(s string) (TargetKind, error) {
	switch TargetKind(s) {
	case KindQuestion, KindAnswer:
		return TargetKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Votable is implemented by content that accumulates votes.
type Votable interface {
	VotableID() uint
	AuthorID() uint
	Kind() TargetKind
	Active() bool
}

// CheckVoter rejects votes on inactive targets and on the voter's own content.
func CheckVoter(target Votable, voterID uint) error {
	if target == nil || !target.Active() {
		return ErrNotFound
	}
	if target.AuthorID() == voterID {
		return ErrSelfVote
	}
	return nil
}

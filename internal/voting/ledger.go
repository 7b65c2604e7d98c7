package voting

import "fmt"

// TransitionKind classifies a change of one identity's vote on one target.
type TransitionKind string

const (
	AddUp          TransitionKind = "add_up"
	AddDown        TransitionKind = "add_down"
	RemoveUp       TransitionKind = "remove_up"
	RemoveDown     TransitionKind = "remove_down"
	SwitchUpToDown TransitionKind = "switch_up_to_down"
	SwitchDownToUp TransitionKind = "switch_down_to_up"
)

// Transition is the outcome of applying a requested direction to the
// voter's current direction. A switch is a single transition so that the
// store can move the voter between sets in one write.
type Transition struct {
	Kind TransitionKind
	From Direction
	To   Direction
}

// Classify computes the transition for a voter currently holding current who
// asks for requested.
func Classify(current, requested Direction) (Transition, error) {
	t := Transition{From: current}
	switch requested {
	case Up:
		switch current {
		case None:
			t.Kind, t.To = AddUp, Up
		case Up:
			t.Kind, t.To = RemoveUp, None
		case Down:
			t.Kind, t.To = SwitchDownToUp, Up
		default:
			return Transition{}, fmt.Errorf("%w: current %q", ErrUndefinedTransition, current)
		}
	case Down:
		switch current {
		case None:
			t.Kind, t.To = AddDown, Down
		case Down:
			t.Kind, t.To = RemoveDown, None
		case Up:
			t.Kind, t.To = SwitchUpToDown, Down
		default:
			return Transition{}, fmt.Errorf("%w: current %q", ErrUndefinedTransition, current)
		}
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidDirection, requested)
	}
	return t, nil
}

// UpDelta is the change in the size of the upvoter set.
func (t Transition) UpDelta() int {
	return membership(t.To, Up) - membership(t.From, Up)
}

// DownDelta is the change in the size of the downvoter set.
func (t Transition) DownDelta() int {
	return membership(t.To, Down) - membership(t.From, Down)
}

// ScoreDelta is the change in upvotes minus downvotes.
func (t Transition) ScoreDelta() int {
	return t.UpDelta() - t.DownDelta()
}

func membership(d, set Direction) int {
	if d == set {
		return 1
	}
	return 0
}

package voting

import "fmt"

// AcceptanceBonus is granted to an answer's author each time the answer
// becomes the accepted one.
const AcceptanceBonus = 15

type weights struct {
	up   int
	down int
}

// Answers weigh more than questions on upvotes; downvotes cost the same.
var reputationWeights = map[TargetKind]weights{
	KindQuestion: {up: 5, down: 2},
	KindAnswer:   {up: 10, down: 2},
}

// ReputationDelta returns the change to the target author's reputation for a
// vote transition. It is total over the six transition kinds for both target
// kinds.
func ReputationDelta(kind TargetKind, t TransitionKind) (int, error) {
	w, ok := reputationWeights[kind]
	if !ok {
		return 0, fmt.Errorf("%w: kind %q", ErrUndefinedTransition, kind)
	}
	switch t {
	case AddUp:
		return w.up, nil
	case AddDown:
		return -w.down, nil
	case RemoveUp:
		return -w.up, nil
	case RemoveDown:
		return w.down, nil
	case SwitchDownToUp:
		return w.down + w.up, nil
	case SwitchUpToDown:
		return -(w.up + w.down), nil
	}
	return 0, fmt.Errorf("%w: %q on %s", ErrUndefinedTransition, t, kind)
}

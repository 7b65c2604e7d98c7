package voting

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		current   Direction
		requested Direction
		want      TransitionKind
		to        Direction
		score     int
	}{
		{None, Up, AddUp, Up, 1},
		{None, Down, AddDown, Down, -1},
		{Up, Up, RemoveUp, None, -1},
		{Down, Down, RemoveDown, None, 1},
		{Up, Down, SwitchUpToDown, Down, -2},
		{Down, Up, SwitchDownToUp, Up, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			tr, err := Classify(tt.current, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Kind)
			assert.Equal(t, tt.to, tr.To)
			assert.Equal(t, tt.score, tr.ScoreDelta())
		})
	}
}

func TestClassify_InvalidDirection(t *testing.T) {
	_, err := Classify(None, None)
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = Classify(Direction("sideways"), Up)
	assert.ErrorIs(t, err, ErrUndefinedTransition)
}

func TestSwitchMovesBetweenSetsInOneStep(t *testing.T) {
	tr, err := Classify(Up, Down)
	require.NoError(t, err)
	assert.Equal(t, -1, tr.UpDelta())
	assert.Equal(t, 1, tr.DownDelta())
}

func TestReputationDelta(t *testing.T) {
	tests := []struct {
		kind TargetKind
		tr   TransitionKind
		want int
	}{
		{KindQuestion, AddUp, 5},
		{KindQuestion, AddDown, -2},
		{KindQuestion, RemoveUp, -5},
		{KindQuestion, RemoveDown, 2},
		{KindQuestion, SwitchDownToUp, 7},
		{KindQuestion, SwitchUpToDown, -7},
		{KindAnswer, AddUp, 10},
		{KindAnswer, AddDown, -2},
		{KindAnswer, RemoveUp, -10},
		{KindAnswer, RemoveDown, 2},
		{KindAnswer, SwitchDownToUp, 12},
		{KindAnswer, SwitchUpToDown, -12},
	}
	for _, tt := range tests {
		got, err := ReputationDelta(tt.kind, tt.tr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.kind, tt.tr)
	}
}

func TestReputationDelta_Undefined(t *testing.T) {
	_, err := ReputationDelta(KindQuestion, TransitionKind("bogus"))
	assert.ErrorIs(t, err, ErrUndefinedTransition)

	_, err = ReputationDelta(TargetKind("comment"), AddUp)
	assert.ErrorIs(t, err, ErrUndefinedTransition)
}

// Switching equals removing the old vote then adding the new one, applied as one delta.
func TestReputationDelta_SwitchIsSumOfRemoveAndAdd(t *testing.T) {
	for _, kind := range []TargetKind{KindQuestion, KindAnswer} {
		removeUp, _ := ReputationDelta(kind, RemoveUp)
		addDown, _ := ReputationDelta(kind, AddDown)
		sw, _ := ReputationDelta(kind, SwitchUpToDown)
		assert.Equal(t, removeUp+addDown, sw)

		removeDown, _ := ReputationDelta(kind, RemoveDown)
		addUp, _ := ReputationDelta(kind, AddUp)
		sw, _ = ReputationDelta(kind, SwitchDownToUp)
		assert.Equal(t, removeDown+addUp, sw)
	}
}

// Random vote sequences against a set model: no voter is ever in both sets,
// the score matches the sets, and reputation matches the sum of deltas.
func TestRandomVoteSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, kind := range []TargetKind{KindQuestion, KindAnswer} {
		up := map[int]bool{}
		down := map[int]bool{}
		score, reputation := 0, 0
		for i := 0; i < 2000; i++ {
			voter := rng.Intn(8)
			req := Up
			if rng.Intn(2) == 0 {
				req = Down
			}
			current := None
			if up[voter] {
				current = Up
			} else if down[voter] {
				current = Down
			}

			tr, err := Classify(current, req)
			require.NoError(t, err)
			delta, err := ReputationDelta(kind, tr.Kind)
			require.NoError(t, err)

			delete(up, voter)
			delete(down, voter)
			switch tr.To {
			case Up:
				up[voter] = true
			case Down:
				down[voter] = true
			}
			score += tr.ScoreDelta()
			reputation += delta

			for v := range up {
				require.False(t, down[v], "voter %d in both sets", v)
			}
			require.Equal(t, len(up)-len(down), score)
		}

		w := reputationWeights[kind]
		assert.Equal(t, len(up)*w.up-len(down)*w.down, reputation)
	}
}

func TestToggleRestoresScore(t *testing.T) {
	first, _ := Classify(None, Up)
	second, _ := Classify(first.To, Up)
	assert.Equal(t, None, second.To)
	assert.Zero(t, first.ScoreDelta()+second.ScoreDelta())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("upvote")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestDirectionPublic(t *testing.T) {
	assert.Nil(t, None.Public())
	assert.Equal(t, "upvote", *Up.Public())
	assert.Equal(t, "downvote", *Down.Public())
}

type stubVotable struct {
	author uint
	active bool
}

func (s stubVotable) VotableID() uint { return 1 }
func (s stubVotable) AuthorID() uint { return s.author }
func (s stubVotable) Kind() TargetKind { return KindQuestion }
func (s stubVotable) Active() bool { return s.active }

func TestCheckVoter(t *testing.T) {
	assert.ErrorIs(t, CheckVoter(stubVotable{author: 1, active: false}, 2), ErrNotFound)
	assert.ErrorIs(t, CheckVoter(stubVotable{author: 1, active: true}, 1), ErrSelfVote)
	assert.NoError(t, CheckVoter(stubVotable{author: 1, active: true}, 2))
}

func TestAcceptanceState(t *testing.T) {
	var s AcceptanceState
	assert.False(t, s.Accepted())

	s, out := s.Accept(7)
	assert.True(t, out.Changed)
	assert.Nil(t, out.Previous)
	require.NotNil(t, s.AnswerID)
	assert.Equal(t, uint(7), *s.AnswerID)

	again, out := s.Accept(7)
	assert.False(t, out.Changed)
	assert.Equal(t, uint(7), *again.AnswerID)

	next, out := s.Accept(9)
	assert.True(t, out.Changed)
	require.NotNil(t, out.Previous)
	assert.Equal(t, uint(7), *out.Previous)
	assert.Equal(t, uint(9), *next.AnswerID)
}

func TestCheckAcceptance(t *testing.T) {
	ok := AcceptRequest{
		QuestionID: 1, QuestionAuthorID: 10, QuestionActive: true,
		AnswerQuestionID: 1, AnswerActive: true, RequesterID: 10,
	}
	assert.NoError(t, CheckAcceptance(ok))

	r := ok
	r.RequesterID = 11
	assert.ErrorIs(t, CheckAcceptance(r), ErrPermission)

	r = ok
	r.AnswerQuestionID = 2
	assert.ErrorIs(t, CheckAcceptance(r), ErrInvalidTarget)

	r = ok
	r.AnswerActive = false
	assert.ErrorIs(t, CheckAcceptance(r), ErrNotFound)
}

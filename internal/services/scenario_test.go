package services

import (
	"context"
	"testing"

	"stackit/internal/voting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asker posts, answerer answers, voter upvotes then switches, asker accepts.
func TestVoteThenAcceptScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.answer.ID

	res, err := f.votes.VoteOn(ctx, voting.KindAnswer, a, f.voter.ID, voting.Up)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 10, f.rep(t, f.answerer))

	res, err = f.votes.VoteOn(ctx, voting.KindAnswer, a, f.voter.ID, voting.Down)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, -12, res.ReputationDelta)
	assert.Equal(t, -2, f.rep(t, f.answerer))

	acc, err := f.answers.AcceptAnswer(ctx, f.question.ID, a, f.asker.ID)
	require.NoError(t, err)
	assert.True(t, acc.Changed)
	assert.True(t, f.reloadAnswer(t, a).IsAccepted)
	assert.Equal(t, 13, f.rep(t, f.answerer))

	assert.Zero(t, f.rep(t, f.asker))
	assert.Zero(t, f.rep(t, f.voter))
}

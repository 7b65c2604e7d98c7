package services

import (
	"context"
	"testing"

	"stackit/internal/models"
	"stackit/internal/voting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dropUser removes the row outright so ApplyReputation finds nobody to credit.
func (f *fixture) dropUser(t *testing.T, u *models.User) {
	t.Helper()
	require.NoError(t, f.db.Exec("DELETE FROM users WHERE id = ?", u.ID).Error)
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestVoteOn_RollsBackWhenReputationFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.dropUser(t, f.answerer)

	_, err := f.votes.VoteOn(ctx, voting.KindAnswer, f.answer.ID, f.voter.ID, voting.Up)
	require.Error(t, err)

	a := f.reloadAnswer(t, f.answer.ID)
	assert.Zero(t, a.Upvotes)
	assert.Zero(t, a.Score)
	assert.Zero(t, f.count(t, &models.Vote{}))
	assert.Zero(t, f.count(t, &models.ReputationLog{}))
}

func TestVoteOn_SwitchRollsBackWhole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.votes.VoteOn(ctx, voting.KindQuestion, f.question.ID, f.voter.ID, voting.Up)
	require.NoError(t, err)
	f.dropUser(t, f.asker)

	_, err = f.votes.VoteOn(ctx, voting.KindQuestion, f.question.ID, f.voter.ID, voting.Down)
	require.Error(t, err)

	res, err := f.votes.Status(ctx, voting.KindQuestion, f.question.ID, f.voter.ID)
	require.NoError(t, err)
	assert.Equal(t, voting.Up, res.Direction)
	assert.Equal(t, 1, res.Upvotes)
	assert.Equal(t, 0, res.Downvotes)
	assert.Equal(t, 1, res.Score)
	assert.EqualValues(t, 1, f.count(t, &models.ReputationLog{}))
}

func TestAcceptAnswer_RollsBackWhenBonusFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	second := f.user(t, "second")
	b := f.newAnswer(t, second)

	_, err := f.answers.AcceptAnswer(ctx, f.question.ID, f.answer.ID, f.asker.ID)
	require.NoError(t, err)
	f.dropUser(t, second)

	_, err = f.answers.AcceptAnswer(ctx, f.question.ID, b.ID, f.asker.ID)
	require.Error(t, err)

	assert.True(t, f.reloadAnswer(t, f.answer.ID).IsAccepted)
	assert.False(t, f.reloadAnswer(t, b.ID).IsAccepted)
	q := f.reloadQuestion(t)
	require.NotNil(t, q.AcceptedAnswerID)
	assert.Equal(t, f.answer.ID, *q.AcceptedAnswerID)
	assert.EqualValues(t, 1, f.count(t, &models.ReputationLog{}))
	assert.Equal(t, voting.AcceptanceBonus, f.rep(t, f.answerer))
}

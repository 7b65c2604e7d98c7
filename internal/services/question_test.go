package services

import (
	"context"
	"testing"

	"stackit/internal/utils"
	"stackit/internal/voting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestion_NormalizesTags(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "go,channels", f.question.Tags)
	assert.Equal(t, "go,sql", normalizeTags([]string{" Go ", "SQL", "go", ""}))
}

func TestGetQuestion_CountsViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.questions.Get(ctx, f.question.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Views)
	assert.Equal(t, 1, q.AnswerCount)
	assert.Equal(t, f.asker.Username, q.User.Username)

	q, err = f.questions.Get(ctx, f.question.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Views)

	_, err = f.questions.Get(ctx, 777)
	assert.ErrorIs(t, err, voting.ErrNotFound)
}

func TestListQuestions_Sorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	newer, err := f.questions.Create(ctx, f.voter, "Newer question", "body", nil)
	require.NoError(t, err)
	_, err = f.votes.VoteOn(ctx, voting.KindQuestion, f.question.ID, f.voter.ID, voting.Up)
	require.NoError(t, err)

	byVotes, total, err := f.questions.List(ctx, NewPage(1, 10, 50), SortVotes, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	assert.Equal(t, f.question.ID, byVotes[0].ID)
	assert.Equal(t, 1, byVotes[0].AnswerCount)

	newest, _, err := f.questions.List(ctx, NewPage(1, 10, 50), SortNewest, nil)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, newest[0].ID)

	paged, total, err := f.questions.List(ctx, NewPage(2, 1, 50), SortNewest, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, paged, 1)
	assert.Equal(t, f.question.ID, paged[0].ID)
}

func TestUpdateAndDeleteQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	utils.GetCache().Purge()

	_, err := f.questions.Update(ctx, f.question.ID, f.voter, "Hijacked", "", nil)
	assert.ErrorIs(t, err, voting.ErrPermission)

	_, err = f.questions.Update(ctx, f.question.ID, f.asker, "  Closing channels  ", "", []string{"concurrency"})
	require.NoError(t, err)
	q := f.reloadQuestion(t)
	assert.Equal(t, "Closing channels", q.Title)
	assert.Equal(t, "concurrency", q.Tags)

	hot, err := f.questions.Hot(ctx, DefaultHotLimit)
	require.NoError(t, err)
	require.Len(t, hot, 1)

	assert.ErrorIs(t, f.questions.Delete(ctx, f.question.ID, f.voter), voting.ErrPermission)
	require.NoError(t, f.questions.Delete(ctx, f.question.ID, f.asker))

	hot, err = f.questions.Hot(ctx, DefaultHotLimit)
	require.NoError(t, err)
	assert.Empty(t, hot)

	_, err = f.questions.Get(ctx, f.question.ID)
	assert.ErrorIs(t, err, voting.ErrNotFound)
	_, err = f.votes.VoteOn(ctx, voting.KindQuestion, f.question.ID, f.voter.ID, voting.Up)
	assert.ErrorIs(t, err, voting.ErrNotFound)
}

func TestDeleteQuestion_DeactivatesAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.questions.Delete(ctx, f.question.ID, f.asker))
	assert.False(t, f.reloadAnswer(t, f.answer.ID).IsActive)

	_, err := f.votes.VoteOn(ctx, voting.KindAnswer, f.answer.ID, f.voter.ID, voting.Up)
	assert.ErrorIs(t, err, voting.ErrNotFound)
	assert.Zero(t, f.rep(t, f.answerer))

	p, err := f.users.Profile(ctx, f.answerer.ID)
	require.NoError(t, err)
	assert.Zero(t, p.AnswerCount)

	assert.ErrorIs(t, f.questions.Delete(ctx, f.question.ID, f.asker), voting.ErrNotFound)
}

func TestListQuestions_FiltersByTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sqlQ, err := f.questions.Create(ctx, f.voter, "Index on a join table", "body", []string{"sql", "postgres"})
	require.NoError(t, err)
	// "go" must not match inside "golang"
	_, err = f.questions.Create(ctx, f.voter, "Golang modules", "body", []string{"golang"})
	require.NoError(t, err)

	got, total, err := f.questions.List(ctx, NewPage(1, 10, 50), SortNewest, []string{"Go"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, f.question.ID, got[0].ID)

	got, total, err = f.questions.List(ctx, NewPage(1, 10, 50), SortNewest, []string{"postgres", "channels"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	assert.Equal(t, sqlQ.ID, got[0].ID)

	_, total, err = f.questions.List(ctx, NewPage(1, 10, 50), SortNewest, []string{"rust"})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = f.questions.List(ctx, NewPage(1, 10, 50), SortNewest, []string{" "})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestPage(t *testing.T) {
	p := NewPage(0, 500, 50)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Zero(t, p.Offset())
	assert.Equal(t, 3, NewPage(3, 10, 50).Pages(21))
	assert.Equal(t, 20, NewPage(3, 10, 50).Offset())
}

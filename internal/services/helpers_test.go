package services

import (
	"context"
	"path/filepath"
	"testing"

	"stackit/internal/db"
	"stackit/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "stackit.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// one connection: SQLite serialises writers anyway
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(conn))
	return conn
}

type fixture struct {
	db            *gorm.DB
	votes         *VoteService
	answers       *AnswerService
	questions     *QuestionService
	notifications *NotificationService
	reputation    *ReputationService
	users         *UserService

	asker    *models.User
	answerer *models.User
	voter    *models.User
	question *models.Question
	answer   *models.Answer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := newTestDB(t)
	log := zap.NewNop()
	notifications := NewNotificationService(conn, log, false)

	f := &fixture{
		db:            conn,
		votes:         NewVoteService(conn, log, nil),
		answers:       NewAnswerService(conn, log, notifications, nil),
		questions:     NewQuestionService(conn, nil),
		notifications: notifications,
		reputation:    NewReputationService(conn, 0),
		users:         NewUserService(conn),
	}
	f.asker = f.user(t, "asker")
	f.answerer = f.user(t, "answerer")
	f.voter = f.user(t, "voter")

	var err error
	f.question, err = f.questions.Create(context.Background(), f.asker, "How do I close a channel?", "Twice?", []string{"Go", "channels"})
	require.NoError(t, err)
	f.answer = f.newAnswer(t, f.answerer)
	return f
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func (f *fixture) newAnswer(t *testing.T, author *models.User) *models.Answer {
	t.Helper()
	a, err := f.answers.Create(context.Background(), f.question.ID, author, "Only the sender closes it.")
	require.NoError(t, err)
	return a
}

func (f *fixture) rep(t *testing.T, u *models.User) int {
	t.Helper()
	var got models.User
	require.NoError(t, f.db.First(&got, u.ID).Error)
	return got.Reputation
}

func (f *fixture) reloadAnswer(t *testing.T, id uint) models.Answer {
	t.Helper()
	var a models.Answer
	require.NoError(t, f.db.First(&a, id).Error)
	return a
}

func (f *fixture) reloadQuestion(t *testing.T) models.Question {
	t.Helper()
	var q models.Question
	require.NoError(t, f.db.First(&q, f.question.ID).Error)
	return q
}

func (f *fixture) notificationsFor(t *testing.T, u *models.User) []models.Notification {
	t.Helper()
	var ns []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", u.ID).Order("id").Find(&ns).Error)
	return ns
}

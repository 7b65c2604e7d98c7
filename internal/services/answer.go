package services

import (
	"context"
	"fmt"

	"stackit/internal/metrics"
	"stackit/internal/models"
	"stackit/internal/voting"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AcceptResult is the question's acceptance state after an accept request.
type AcceptResult struct {
	QuestionID       uint
	AnswerID         uint
	PreviousAnswerID *uint
	// Changed is false when the answer was already accepted.
	Changed bool
}

type AnswerService struct {
	db       *gorm.DB
	log      *zap.Logger
	notifier Notifier
	ranking  *RankingService
}

func NewAnswerService(db *gorm.DB, log *zap.Logger, notifier Notifier, ranking *RankingService) *AnswerService {
	return &AnswerService{db: db, log: log, notifier: notifier, ranking: ranking}
}

// Accept accepts an answer on behalf of the asker of the question it belongs to.
func (s *AnswerService) Accept(ctx context.Context, answerID, requesterID uint) (AcceptResult, error) {
	var answer models.Answer
	if err := s.db.WithContext(ctx).Select("id", "question_id").First(&answer, answerID).Error; err != nil {
		return AcceptResult{}, storeErr(err)
	}
	return s.AcceptAnswer(ctx, answer.QuestionID, answerID, requesterID)
}

// AcceptAnswer marks answerID as the accepted answer of questionID. The
// previous accepted answer (if any) is cleared, and the new answer's author
// receives the acceptance bonus, all in one transaction. Accepting the
// answer that is already accepted changes nothing and grants nothing.
// The bonus of a superseded answer is kept by its author.
func (s *AnswerService) AcceptAnswer(ctx context.Context, questionID, answerID, requesterID uint) (AcceptResult, error) {
	var (
		res      AcceptResult
		question models.Question
		answer   models.Answer
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate).First(&question, questionID).Error; err != nil {
			return storeErr(err)
		}
		if err := tx.First(&answer, answerID).Error; err != nil {
			return storeErr(err)
		}

		err := voting.CheckAcceptance(voting.AcceptRequest{
			QuestionID:       question.ID,
			QuestionAuthorID: question.UserID,
			QuestionActive:   question.IsActive,
			AnswerQuestionID: answer.QuestionID,
			AnswerActive:     answer.IsActive,
			RequesterID:      requesterID,
		})
		if err != nil {
			return err
		}

		next, outcome := question.Acceptance().Accept(answer.ID)
		res = AcceptResult{
			QuestionID:       question.ID,
			AnswerID:         *next.AnswerID,
			PreviousAnswerID: outcome.Previous,
			Changed:          outcome.Changed,
		}
		if !outcome.Changed {
			return nil
		}

		err = tx.Model(&models.Answer{}).
			Where("question_id = ? AND is_accepted = ?", question.ID, true).
			Update("is_accepted", false).Error
		if err != nil {
			return storeErr(err)
		}
		if err := tx.Model(&answer).Update("is_accepted", true).Error; err != nil {
			return storeErr(err)
		}
		if err := tx.Model(&question).Update("accepted_answer_id", answer.ID).Error; err != nil {
			return storeErr(err)
		}
		return storeErr(ApplyReputation(tx, answer.UserID, voting.AcceptanceBonus, ActionAnswerAccepted, voting.KindAnswer, answer.ID))
	})
	if err != nil {
		metrics.VoteRejections.WithLabelValues(reason(err)).Inc()
		return AcceptResult{}, err
	}

	switch {
	case !res.Changed:
		metrics.AcceptancesTotal.WithLabelValues("unchanged").Inc()
		return res, nil
	case res.PreviousAnswerID != nil:
		metrics.AcceptancesTotal.WithLabelValues("superseded").Inc()
	default:
		metrics.AcceptancesTotal.WithLabelValues("accepted").Inc()
	}

	s.log.Info("answer accepted",
		zap.Uint("question", question.ID),
		zap.Uint("answer", answer.ID),
		zap.Uint("author", answer.UserID))

	s.notifier.Notify(ctx, models.Notification{
		UserID:     answer.UserID,
		ActorID:    &requesterID,
		Type:       models.NotificationTypeAcceptedAnswer,
		Message:    fmt.Sprintf("Your answer was accepted for %q", question.Title),
		QuestionID: &question.ID,
		AnswerID:   &answer.ID,
	})
	s.ranking.ScheduleUpdate(question.ID)
	return res, nil
}

// Create appends an answer to an active question and notifies the asker.
func (s *AnswerService) Create(ctx context.Context, questionID uint, author *models.User, content string) (*models.Answer, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		return nil, storeErr(err)
	}
	if !question.IsActive {
		return nil, voting.ErrNotFound
	}

	answer := models.Answer{
		QuestionID: question.ID,
		UserID:     author.ID,
		Content:    content,
		IsActive:   true,
	}
	if err := s.db.WithContext(ctx).Create(&answer).Error; err != nil {
		return nil, storeErr(err)
	}
	answer.User = *author

	s.notifier.Notify(ctx, models.Notification{
		UserID:     question.UserID,
		ActorID:    &author.ID,
		Type:       models.NotificationTypeAnswer,
		Message:    fmt.Sprintf("%s answered your question %q", author.Username, question.Title),
		QuestionID: &question.ID,
		AnswerID:   &answer.ID,
	})
	s.ranking.ScheduleUpdate(question.ID)
	return &answer, nil
}

// Update replaces an answer's content. Owners and admins only.
func (s *AnswerService) Update(ctx context.Context, answerID uint, requester *models.User, content string) (*models.Answer, error) {
	answer, err := s.editable(ctx, answerID, requester)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(answer).Update("content", content).Error; err != nil {
		return nil, storeErr(err)
	}
	return answer, nil
}

// Delete soft-deletes an answer. If it was accepted, the question returns
// to having no accepted answer. The question row is locked first, the same
// order AcceptAnswer uses, so an accept cannot land on a deleted answer.
func (s *AnswerService) Delete(ctx context.Context, answerID uint, requester *models.User) error {
	var answer models.Answer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id", "question_id").First(&answer, answerID).Error; err != nil {
			return storeErr(err)
		}
		if err := tx.Clauses(forUpdate).Select("id").First(&models.Question{}, answer.QuestionID).Error; err != nil {
			return storeErr(err)
		}
		if err := tx.First(&answer, answerID).Error; err != nil {
			return storeErr(err)
		}
		if err := canEdit(answer.IsActive, answer.UserID, requester); err != nil {
			return err
		}

		err := tx.Model(&answer).Updates(map[string]interface{}{
			"is_active":   false,
			"is_accepted": false,
		}).Error
		if err != nil {
			return storeErr(err)
		}
		err = tx.Model(&models.Question{}).
			Where("id = ? AND accepted_answer_id = ?", answer.QuestionID, answer.ID).
			Update("accepted_answer_id", nil).Error
		return storeErr(err)
	})
	if err != nil {
		return err
	}
	s.ranking.ScheduleUpdate(answer.QuestionID)
	return nil
}

// ListByQuestion returns active answers, accepted first, then by score.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID uint, page Page) ([]models.Answer, int64, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).Select("id", "is_active").First(&question, questionID).Error; err != nil {
		return nil, 0, storeErr(err)
	}
	if !question.IsActive {
		return nil, 0, voting.ErrNotFound
	}

	q := s.db.WithContext(ctx).Model(&models.Answer{}).
		Where("question_id = ? AND is_active = ?", questionID, true).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}

	var answers []models.Answer
	err := q.Preload("User").
		Order("is_accepted DESC, score DESC, created_at ASC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&answers).Error
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return answers, total, nil
}

func (s *AnswerService) editable(ctx context.Context, answerID uint, requester *models.User) (*models.Answer, error) {
	var answer models.Answer
	if err := s.db.WithContext(ctx).First(&answer, answerID).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := canEdit(answer.IsActive, answer.UserID, requester); err != nil {
		return nil, err
	}
	return &answer, nil
}

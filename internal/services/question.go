package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stackit/internal/models"
	"stackit/internal/utils"
	"stackit/internal/voting"

	"gorm.io/gorm"
)

const (
	hotCacheTTL     = time.Minute
	DefaultHotLimit = 10
)

type QuestionSort string

const (
	SortNewest QuestionSort = "newest"
	SortVotes  QuestionSort = "votes"
)

type QuestionService struct {
	db      *gorm.DB
	ranking *RankingService
}

func NewQuestionService(db *gorm.DB, ranking *RankingService) *QuestionService {
	return &QuestionService{db: db, ranking: ranking}
}

func (s *QuestionService) Create(ctx context.Context, author *models.User, title, description string, tags []string) (*models.Question, error) {
	q := models.Question{
		UserID:      author.ID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Tags:        normalizeTags(tags),
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, storeErr(err)
	}
	q.User = *author
	s.ranking.ScheduleUpdate(q.ID)
	return &q, nil
}

// Get loads an active question with its author and counts one view.
func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	db := s.db.WithContext(ctx)

	var q models.Question
	if err := db.Preload("User").First(&q, id).Error; err != nil {
		return nil, storeErr(err)
	}
	if !q.IsActive {
		return nil, voting.ErrNotFound
	}

	if err := db.Model(&q).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return nil, storeErr(err)
	}
	q.Views++

	var answers int64
	if err := db.Model(&models.Answer{}).Where("question_id = ? AND is_active = ?", id, true).Count(&answers).Error; err != nil {
		return nil, storeErr(err)
	}
	q.AnswerCount = int(answers)
	return &q, nil
}

// List pages through active questions. With tags set, only questions
// carrying at least one of them are returned.
func (s *QuestionService) List(ctx context.Context, page Page, sort QuestionSort, tags []string) ([]models.Question, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("is_active = ?", true)
	if cond, args := tagFilter(tags); cond != "" {
		q = q.Where(cond, args...)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}

	order := "created_at DESC, id DESC"
	if sort == SortVotes {
		order = "score DESC, created_at DESC, id DESC"
	}

	var questions []models.Question
	err := q.Preload("User").
		Order(order).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&questions).Error
	if err != nil {
		return nil, 0, storeErr(err)
	}
	if err := s.fillAnswerCounts(ctx, questions); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Hot returns the questions with the highest hot score, cached briefly.
func (s *QuestionService) Hot(ctx context.Context, limit int) ([]models.Question, error) {
	key := fmt.Sprintf("questions:hot:%d", limit)
	if cached, ok := utils.GetCache().Get(key).([]models.Question); ok {
		return cached, nil
	}

	var questions []models.Question
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_active = ?", true).
		Order("hot_score DESC, score DESC, id DESC").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, storeErr(err)
	}
	if err := s.fillAnswerCounts(ctx, questions); err != nil {
		return nil, err
	}

	utils.GetCache().Set(key, questions, hotCacheTTL)
	return questions, nil
}

// Update edits title, description and tags. Owners and admins only.
func (s *QuestionService) Update(ctx context.Context, id uint, requester *models.User, title, description string, tags []string) (*models.Question, error) {
	q, err := s.editable(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if t := strings.TrimSpace(title); t != "" {
		updates["title"] = t
	}
	if description != "" {
		updates["description"] = description
	}
	if tags != nil {
		updates["tags"] = normalizeTags(tags)
	}
	if len(updates) == 0 {
		return q, nil
	}
	if err := s.db.WithContext(ctx).Model(q).Updates(updates).Error; err != nil {
		return nil, storeErr(err)
	}
	return q, nil
}

// Delete soft-deletes a question together with its answers. Votes and
// reputation already granted are left as they are; inactive questions and
// answers reject further votes and accepts.
func (s *QuestionService) Delete(ctx context.Context, id uint, requester *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q models.Question
		if err := tx.Clauses(forUpdate).First(&q, id).Error; err != nil {
			return storeErr(err)
		}
		if err := canEdit(q.IsActive, q.UserID, requester); err != nil {
			return err
		}
		if err := tx.Model(&q).Update("is_active", false).Error; err != nil {
			return storeErr(err)
		}
		err := tx.Model(&models.Answer{}).
			Where("question_id = ? AND is_active = ?", id, true).
			Update("is_active", false).Error
		return storeErr(err)
	})
	if err != nil {
		return err
	}
	utils.GetCache().Delete(fmt.Sprintf("questions:hot:%d", DefaultHotLimit))
	return nil
}

func (s *QuestionService) editable(ctx context.Context, id uint, requester *models.User) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := canEdit(q.IsActive, q.UserID, requester); err != nil {
		return nil, err
	}
	return &q, nil
}

// canEdit allows owners and admins to change active content.
func canEdit(active bool, ownerID uint, requester *models.User) error {
	if !active {
		return voting.ErrNotFound
	}
	if ownerID != requester.ID && !requester.IsAdmin() {
		return voting.ErrPermission
	}
	return nil
}

func (s *QuestionService) fillAnswerCounts(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	var rows []struct {
		QuestionID uint
		Count      int
	}
	err := s.db.WithContext(ctx).Model(&models.Answer{}).
		Select("question_id, COUNT(*) AS count").
		Where("question_id IN ? AND is_active = ?", ids, true).
		Group("question_id").
		Scan(&rows).Error
	if err != nil {
		return storeErr(err)
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.QuestionID] = r.Count
	}
	for i := range questions {
		questions[i].AnswerCount = counts[questions[i].ID]
	}
	return nil
}

// tagFilter matches any of tags against the comma separated tags column.
func tagFilter(tags []string) (string, []interface{}) {
	wanted := normalizeTags(tags)
	if wanted == "" {
		return "", nil
	}
	var (
		parts []string
		args  []interface{}
	)
	for _, t := range strings.Split(wanted, ",") {
		parts = append(parts, "(',' || tags || ',') LIKE ?")
		args = append(args, "%,"+t+",%")
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func normalizeTags(tags []string) string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

package services

import (
	"context"
	"fmt"
	"time"

	"stackit/internal/metrics"
	"stackit/internal/models"
	"stackit/internal/utils"
	"stackit/internal/voting"

	"gorm.io/gorm"
)

// 声望动作
const (
	ActionAnswerAccepted = "answer accepted"
	actionVotePrefix     = "vote: "
)

// ApplyReputation 在调用方事务中记录声望明细并更新用户余额。
// It is the only code path that writes users.reputation.
func ApplyReputation(tx *gorm.DB, userID uint, amount int, action string, kind voting.TargetKind, targetID uint) error {
	if amount == 0 {
		return nil
	}

	// 1. 创建声望明细记录
	entry := models.ReputationLog{
		UserID:     userID,
		Amount:     amount,
		Action:     action,
		TargetType: string(kind),
		TargetID:   targetID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	// 2. 更新用户声望余额
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("apply reputation: user %d: %w", userID, gorm.ErrRecordNotFound)
	}

	metrics.ReputationDelta.Observe(float64(amount))
	return nil
}

func voteAction(kind voting.TargetKind, t voting.TransitionKind) string {
	return actionVotePrefix + string(kind) + " " + string(t)
}

// ReputationService serves the read side of reputation.
type ReputationService struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewReputationService(db *gorm.DB, leaderboardTTL time.Duration) *ReputationService {
	return &ReputationService{db: db, ttl: leaderboardTTL}
}

// Leaderboard returns the users with the highest reputation. Results are
// cached for the configured TTL.
func (s *ReputationService) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	key := fmt.Sprintf("leaderboard:%d", limit)
	if cached, ok := utils.GetCache().Get(key).([]models.User); ok {
		return cached, nil
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Select("id", "username", "avatar", "reputation").
		Order("reputation DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, storeErr(err)
	}

	if s.ttl > 0 {
		utils.GetCache().Set(key, users, s.ttl)
	}
	return users, nil
}

// History lists a user's reputation changes, newest first.
func (s *ReputationService) History(ctx context.Context, userID uint, page Page) ([]models.ReputationLog, int64, error) {
	var logs []models.ReputationLog
	var total int64

	q := s.db.WithContext(ctx).Model(&models.ReputationLog{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}
	err := q.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return logs, total, nil
}

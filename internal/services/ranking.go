package services

import (
	"context"
	"sync"
	"time"

	"stackit/internal/models"
	"stackit/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	rankingQueueSize = 1000
	rankingBatchSize = 50
	rankingInterval  = 500 * time.Millisecond
)

// RankingService recomputes question hot scores off the request path.
type RankingService struct {
	db      *gorm.DB
	log     *zap.Logger
	queue   chan uint // 待更新的问题 ID 队列
	pending map[uint]bool
	mu      sync.Mutex
}

func NewRankingService(db *gorm.DB, log *zap.Logger) *RankingService {
	return &RankingService{
		db:      db,
		log:     log,
		queue:   make(chan uint, rankingQueueSize),
		pending: make(map[uint]bool),
	}
}

// Start runs the worker until ctx is done.
func (s *RankingService) Start(ctx context.Context) {
	go s.worker(ctx)
}

// ScheduleUpdate queues a question for recomputation. Requests for a question
// already queued are dropped. Safe to call on a nil service.
func (s *RankingService) ScheduleUpdate(questionID uint) {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.pending[questionID] {
		s.mu.Unlock()
		return
	}
	s.pending[questionID] = true
	s.mu.Unlock()

	select {
	case s.queue <- questionID:
	default:
		s.mu.Lock()
		delete(s.pending, questionID)
		s.mu.Unlock()
		s.log.Warn("ranking queue full, skipping", zap.Uint("question", questionID))
	}
}

func (s *RankingService) worker(ctx context.Context) {
	batch := make([]uint, 0, rankingBatchSize)
	ticker := time.NewTicker(rankingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case id := <-s.queue:
			batch = append(batch, id)
			if len(batch) >= rankingBatchSize {
				s.processBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *RankingService) processBatch(ctx context.Context, ids []uint) {
	for _, id := range ids {
		if err := s.Recompute(ctx, id); err != nil {
			s.log.Warn("update hot score", zap.Uint("question", id), zap.Error(err))
		}
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// Recompute updates one question's hot score synchronously.
func (s *RankingService) Recompute(ctx context.Context, questionID uint) error {
	db := s.db.WithContext(ctx)

	var q models.Question
	if err := db.First(&q, questionID).Error; err != nil {
		return err
	}

	var answers int64
	err := db.Model(&models.Answer{}).
		Where("question_id = ? AND is_active = ?", questionID, true).
		Count(&answers).Error
	if err != nil {
		return err
	}

	score := utils.CalculateHotScore(q.CreatedAt, q.Upvotes, q.Downvotes, int(answers), q.Views, q.AcceptedAnswerID != nil)
	return db.Model(&q).UpdateColumn("hot_score", int(score)).Error
}

// StartScheduledRefresh recomputes recent questions once a day at 03:00.
func (s *RankingService) StartScheduledRefresh(ctx context.Context) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Until(next)):
			}

			n := s.refreshRecent(ctx)
			s.log.Info("scheduled hot score refresh", zap.Int("questions", n))
		}
	}()
}

// refreshRecent recomputes questions from the last 7 days plus the current
// top 30, each once.
func (s *RankingService) refreshRecent(ctx context.Context) int {
	processed := make(map[uint]bool)
	db := s.db.WithContext(ctx)

	var recent []models.Question
	db.Where("created_at >= ? AND is_active = ?", time.Now().AddDate(0, 0, -7), true).Select("id").Find(&recent)

	var top []models.Question
	db.Where("is_active = ?", true).Order("hot_score DESC").Limit(30).Select("id").Find(&top)

	for _, q := range append(recent, top...) {
		if processed[q.ID] {
			continue
		}
		processed[q.ID] = true
		if err := s.Recompute(ctx, q.ID); err != nil {
			s.log.Warn("update hot score", zap.Uint("question", q.ID), zap.Error(err))
		}
	}
	return len(processed)
}

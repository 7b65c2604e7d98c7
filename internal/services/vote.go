package services

import (
	"context"

	"stackit/internal/metrics"
	"stackit/internal/models"
	"stackit/internal/voting"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VoteResult is the public vote state of a target after a request.
type VoteResult struct {
	Kind      voting.TargetKind
	TargetID  uint
	Score     int
	Upvotes   int
	Downvotes int
	Direction voting.Direction

	// Set by VoteOn only.
	Transition      voting.TransitionKind
	ReputationDelta int
}

type VoteService struct {
	db      *gorm.DB
	log     *zap.Logger
	ranking *RankingService
}

func NewVoteService(db *gorm.DB, log *zap.Logger, ranking *RankingService) *VoteService {
	return &VoteService{db: db, log: log, ranking: ranking}
}

// VoteOn applies a vote request. Membership, counters and the author's
// reputation change in one transaction with the target row locked, so
// concurrent voters never lose an update and a voter never holds two votes.
func (s *VoteService) VoteOn(ctx context.Context, kind voting.TargetKind, targetID, voterID uint, dir voting.Direction) (VoteResult, error) {
	if dir != voting.Up && dir != voting.Down {
		return VoteResult{}, voting.ErrInvalidDirection
	}

	res := VoteResult{Kind: kind, TargetID: targetID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx.Clauses(forUpdate), kind, targetID)
		if err != nil {
			return err
		}
		if err := voting.CheckVoter(target, voterID); err != nil {
			return err
		}

		existing, err := findVote(tx, kind, targetID, voterID)
		if err != nil {
			return err
		}
		current := voting.None
		if existing != nil {
			current = existing.Direction
		}

		t, err := voting.Classify(current, dir)
		if err != nil {
			return err
		}
		delta, err := voting.ReputationDelta(kind, t.Kind)
		if err != nil {
			return err
		}

		if err := writeVote(tx, existing, kind, targetID, voterID, t); err != nil {
			return storeErr(err)
		}

		err = tx.Model(target).UpdateColumns(map[string]interface{}{
			"upvotes":   gorm.Expr("upvotes + ?", t.UpDelta()),
			"downvotes": gorm.Expr("downvotes + ?", t.DownDelta()),
			"score":     gorm.Expr("score + ?", t.ScoreDelta()),
		}).Error
		if err != nil {
			return storeErr(err)
		}

		if err := ApplyReputation(tx, target.AuthorID(), delta, voteAction(kind, t.Kind), kind, targetID); err != nil {
			return storeErr(err)
		}

		if err := readCounts(tx, target, &res); err != nil {
			return err
		}
		res.Direction = t.To
		res.Transition = t.Kind
		res.ReputationDelta = delta
		return nil
	})
	if err != nil {
		metrics.VoteRejections.WithLabelValues(reason(err)).Inc()
		return VoteResult{}, err
	}

	metrics.VotesTotal.WithLabelValues(string(kind), string(res.Transition)).Inc()
	s.log.Debug("vote applied",
		zap.String("kind", string(kind)),
		zap.Uint("target", targetID),
		zap.Uint("voter", voterID),
		zap.String("transition", string(res.Transition)),
		zap.Int("reputation_delta", res.ReputationDelta))

	if kind == voting.KindQuestion {
		s.ranking.ScheduleUpdate(targetID)
	}
	return res, nil
}

// Status reports the voter's current direction and the target's score
// without changing anything.
func (s *VoteService) Status(ctx context.Context, kind voting.TargetKind, targetID, voterID uint) (VoteResult, error) {
	tx := s.db.WithContext(ctx)
	target, err := loadTarget(tx, kind, targetID)
	if err != nil {
		return VoteResult{}, err
	}
	if !target.Active() {
		return VoteResult{}, voting.ErrNotFound
	}

	res := VoteResult{Kind: kind, TargetID: targetID}
	if err := readCounts(tx, target, &res); err != nil {
		return VoteResult{}, err
	}
	existing, err := findVote(tx, kind, targetID, voterID)
	if err != nil {
		return VoteResult{}, err
	}
	if existing != nil {
		res.Direction = existing.Direction
	}
	return res, nil
}

func loadTarget(tx *gorm.DB, kind voting.TargetKind, id uint) (voting.Votable, error) {
	switch kind {
	case voting.KindQuestion:
		var q models.Question
		if err := tx.First(&q, id).Error; err != nil {
			return nil, storeErr(err)
		}
		return &q, nil
	case voting.KindAnswer:
		var a models.Answer
		if err := tx.First(&a, id).Error; err != nil {
			return nil, storeErr(err)
		}
		return &a, nil
	}
	return nil, voting.ErrInvalidKind
}

func findVote(tx *gorm.DB, kind voting.TargetKind, targetID, voterID uint) (*models.Vote, error) {
	var votes []models.Vote
	err := tx.Where("target_type = ? AND target_id = ? AND user_id = ?", kind, targetID, voterID).
		Limit(1).
		Find(&votes).Error
	if err != nil {
		return nil, storeErr(err)
	}
	if len(votes) == 0 {
		return nil, nil
	}
	return &votes[0], nil
}

// writeVote persists a transition as exactly one statement. A switch
// rewrites the direction in place so the voter is never in neither set.
func writeVote(tx *gorm.DB, existing *models.Vote, kind voting.TargetKind, targetID, voterID uint, t voting.Transition) error {
	switch t.Kind {
	case voting.AddUp, voting.AddDown:
		return tx.Create(&models.Vote{
			UserID:     voterID,
			TargetType: kind,
			TargetID:   targetID,
			Direction:  t.To,
		}).Error
	case voting.RemoveUp, voting.RemoveDown:
		return tx.Delete(existing).Error
	case voting.SwitchUpToDown, voting.SwitchDownToUp:
		return tx.Model(existing).Update("direction", t.To).Error
	}
	return voting.ErrUndefinedTransition
}

func readCounts(tx *gorm.DB, target voting.Votable, res *VoteResult) error {
	var counts struct {
		Upvotes   int
		Downvotes int
		Score     int
	}
	err := tx.Model(target).
		Select("upvotes", "downvotes", "score").
		Where("id = ?", target.VotableID()).
		Take(&counts).Error
	if err != nil {
		return storeErr(err)
	}
	res.Upvotes = counts.Upvotes
	res.Downvotes = counts.Downvotes
	res.Score = counts.Score
	return nil
}

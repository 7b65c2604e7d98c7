package services

import (
	"errors"
	"fmt"

	"stackit/internal/voting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate locks the selected rows until the surrounding transaction ends.
// SQLite ignores the clause and serialises writers instead.
var forUpdate = clause.Locking{Strength: "UPDATE"}

// storeErr maps a gorm error onto the voting error taxonomy.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return voting.ErrNotFound
	}
	return fmt.Errorf("%w: %w", voting.ErrTransient, err)
}

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit, max int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if max > 0 && limit > max {
		limit = max
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages is the number of pages needed for total items.
func (p Page) Pages(total int64) int {
	if p.Limit == 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// reason labels an error for metrics.
func reason(err error) string {
	switch {
	case errors.Is(err, voting.ErrNotFound):
		return "not_found"
	case errors.Is(err, voting.ErrSelfVote):
		return "self_vote"
	case errors.Is(err, voting.ErrPermission):
		return "permission"
	case errors.Is(err, voting.ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, voting.ErrInvalidDirection), errors.Is(err, voting.ErrInvalidKind):
		return "invalid_input"
	case errors.Is(err, voting.ErrTransient):
		return "transient"
	}
	return "internal"
}

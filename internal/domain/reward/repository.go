package reward

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines reward data access interface
type Repository interface {
	// Accrue inserts rewards for every catalog tier the user has newly
	// earned, in one transaction. Safe to call repeatedly.
	Accrue(ctx context.Context, userID uuid.UUID, tiers []Tier) error

	CompletedReportCount(ctx context.Context, citizenID uuid.UUID) (int, error)
	AwardedTierNumbers(ctx context.Context, userID uuid.UUID) (map[int]bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Reward, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new reward repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Accrue(ctx context.Context, userID uuid.UUID, tiers []Tier) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var completed int
	err = tx.GetContext(ctx2, &completed, `
		SELECT COUNT(*) FROM reports
		WHERE citizen_id = $1 AND status = 'completed'
	`, userID)
	if err != nil {
		return fmt.Errorf("%w: count completed reports", ErrInternal)
	}

	var awardedNumbers []int
	err = tx.SelectContext(ctx2, &awardedNumbers, `
		SELECT tier FROM rewards WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("%w: load awarded tiers", ErrInternal)
	}

	awarded := make(map[int]bool, len(awardedNumbers))
	for _, n := range awardedNumbers {
		awarded[n] = true
	}

	for _, tier := range TiersEarned(completed, awarded) {
		// ON CONFLICT backs the already-awarded check with the
		// (user_id, tier) uniqueness constraint.
		_, err := tx.ExecContext(ctx2, `
			INSERT INTO rewards (id, user_id, tier, brand, code, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, tier) DO NOTHING
		`, uuid.New(), userID, tier.Number, tier.Brand, tier.Code, tier.Description, time.Now())
		if err != nil {
			return fmt.Errorf("%w: insert reward", ErrInternal)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

func (r *repository) CompletedReportCount(ctx context.Context, citizenID uuid.UUID) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.GetContext(ctx2, &count, `
		SELECT COUNT(*) FROM reports
		WHERE citizen_id = $1 AND status = 'completed'
	`, citizenID)
	if err != nil {
		return 0, fmt.Errorf("%w: count completed reports", ErrInternal)
	}
	return count, nil
}

func (r *repository) AwardedTierNumbers(ctx context.Context, userID uuid.UUID) (map[int]bool, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var numbers []int
	err := r.db.SelectContext(ctx2, &numbers, `
		SELECT tier FROM rewards WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load awarded tiers", ErrInternal)
	}

	awarded := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		awarded[n] = true
	}
	return awarded, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Reward, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rewards := make([]*Reward, 0)
	err := r.db.SelectContext(ctx2, &rewards, `
		SELECT id, user_id, tier, brand, code, description, created_at
		FROM rewards
		WHERE user_id = $1
		ORDER BY tier ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list rewards", ErrInternal)
	}
	return rewards, nil
}

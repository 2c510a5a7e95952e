package reward

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles reward accrual and the rewards view
type Service struct {
	repo Repository
}

// NewService creates reward service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Accrue awards every catalog tier the citizen's completed-report count has
// reached but which has not been awarded yet. Idempotent: with no change in
// the completed count a second call awards nothing.
func (s *Service) Accrue(ctx context.Context, citizenID uuid.UUID) error {
	return s.repo.Accrue(ctx, citizenID, Catalog())
}

// NextTierView is the upcoming tier shown to the citizen
type NextTierView struct {
	Tier      int    `json:"tier"`
	Threshold int    `json:"threshold"`
	Brand     string `json:"brand"`
}

// RewardsResponse is the rewards dashboard payload
type RewardsResponse struct {
	CompletedReports int           `json:"completed_reports"`
	Rewards          []*Reward     `json:"rewards"`
	NextTier         *NextTierView `json:"next_tier"`
}

// GetRewards runs accrual and returns the user's reward state. Accrual runs
// first so the awarded set and next tier never disagree with the count.
func (s *Service) GetRewards(ctx context.Context, userID uuid.UUID) (*RewardsResponse, error) {
	if err := s.Accrue(ctx, userID); err != nil {
		// The view still renders from persisted state
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Reward accrual failed")
	}

	completed, err := s.repo.CompletedReportCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	awarded := make(map[int]bool, len(rewards))
	for _, rw := range rewards {
		awarded[rw.Tier] = true
	}

	var next *NextTierView
	if tier := NextTier(awarded); tier != nil {
		next = &NextTierView{
			Tier:      tier.Number,
			Threshold: tier.Threshold,
			Brand:     tier.Brand,
		}
	}

	return &RewardsResponse{
		CompletedReports: completed,
		Rewards:          rewards,
		NextTier:         next,
	}, nil
}

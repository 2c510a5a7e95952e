package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Accruer re-evaluates reward tiers for a citizen. Implemented by the
// reward service.
type Accruer interface {
	Accrue(ctx context.Context, userID uuid.UUID) error
}

// URLResolver turns a stored photo key into a public URL.
type URLResolver interface {
	URL(key string) string
}

// Service handles task business logic
type Service struct {
	repo    Repository
	accruer Accruer
	urls    URLResolver
}

// NewService creates new task service
func NewService(repo Repository, accruer Accruer, urls URLResolver) *Service {
	return &Service{
		repo:    repo,
		accruer: accruer,
		urls:    urls,
	}
}

// ListAvailable returns the unclaimed pool: pending tasks whose report is
// awaiting validation or validated, optionally narrowed by free-text search.
// Only invalid reports are excluded.
func (s *Service) ListAvailable(ctx context.Context, search string) ([]*AvailableTask, error) {
	tasks, err := s.repo.ListAvailable(ctx, search)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.PhotoURL = s.urls.URL(t.PhotoKey)
	}
	return tasks, nil
}

// ListMine returns the caller's tasks with report context and any proof.
func (s *Service) ListMine(ctx context.Context, volunteerID uuid.UUID) ([]*MyTask, error) {
	tasks, err := s.repo.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.PhotoURL = s.urls.URL(t.PhotoKey)
		if t.ProofPhotoKey.Valid {
			t.ProofPhotoURL = s.urls.URL(t.ProofPhotoKey.String)
		}
	}
	return tasks, nil
}

// ListManaged returns the moderator management view.
func (s *Service) ListManaged(ctx context.Context, filter *ManagedFilter) ([]*ManagedTask, error) {
	return s.repo.ListManaged(ctx, filter)
}

// Claim assigns a task to the calling volunteer. Re-claiming your own
// pending or assigned task succeeds; a task held by someone else, or one
// already past claiming, is rejected. The repository re-checks under its
// transaction, so two concurrent first claims resolve to a single winner.
func (s *Service) Claim(ctx context.Context, taskID, volunteerID uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	if !t.IsClaimable() {
		return ErrTaskNotClaimable
	}
	if t.AssignedVolunteerID.Valid && !t.IsOwnedBy(volunteerID) {
		return ErrTaskAlreadyClaimed
	}

	return s.repo.Claim(ctx, taskID, volunteerID)
}

// Start moves the caller's task to in_progress.
func (s *Service) Start(ctx context.Context, taskID, volunteerID uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	if !t.IsOwnedBy(volunteerID) {
		return ErrTaskNotOwned
	}
	if t.Status == StatusCompleted {
		return ErrTaskNotCompletable
	}

	return s.repo.Start(ctx, taskID, volunteerID)
}

// Complete finishes the caller's task with the stored proof photo, then
// runs reward accrual for the report's citizen.
func (s *Service) Complete(ctx context.Context, taskID, volunteerID uuid.UUID, req *CompleteRequest, proofPhotoKey string) (*CompleteResponse, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if !t.IsOwnedBy(volunteerID) {
		return nil, ErrTaskNotOwned
	}
	if t.Status != StatusAssigned && t.Status != StatusInProgress {
		return nil, ErrTaskNotCompletable
	}

	now := time.Now().UTC()
	proof := &Proof{
		ID:          uuid.New(),
		TaskID:      taskID,
		VolunteerID: volunteerID,
		PhotoKey:    proofPhotoKey,
		Notes:       req.Notes,
		UploadedAt:  now,
	}

	citizenID, err := s.repo.Complete(ctx, taskID, volunteerID, proof)
	if err != nil {
		return nil, err
	}

	// Accrual failures must not undo the committed completion; tiers are
	// re-evaluated on the next rewards read anyway.
	if err := s.accruer.Accrue(ctx, citizenID); err != nil {
		log.Warn().Err(err).
			Str("task_id", taskID.String()).
			Str("citizen_id", citizenID.String()).
			Msg("reward accrual after completion failed")
	}

	return &CompleteResponse{
		TaskID:      taskID,
		Status:      StatusCompleted,
		CompletedAt: now,
		ProofURL:    s.urls.URL(proofPhotoKey),
	}, nil
}

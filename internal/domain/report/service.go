package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/greentrack/greentrack-api/internal/domain/user"
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

// Service handles report business logic
type Service struct {
	repo    Repository
	users   user.Repository
	accruer Accruer
	urls    URLResolver
}

// NewService creates new report service
func NewService(repo Repository, users user.Repository, accruer Accruer, urls URLResolver) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		accruer: accruer,
		urls:    urls,
	}
}

// Create persists a new report together with its paired pending task.
// The photo has already been stored; photoKey references it.
func (s *Service) Create(ctx context.Context, citizenID uuid.UUID, req *CreateReportRequest, photoKey string) (*CreateReportResponse, error) {
	now := time.Now().UTC()
	severity := Severity(req.Severity)
	if severity == "" {
		severity = SeverityMedium
	}

	rep := &Report{
		ID:           uuid.New(),
		CitizenID:    citizenID,
		Category:     req.Category,
		Description:  req.Description,
		Severity:     severity,
		LocationText: req.LocationText,
		PhotoKey:     photoKey,
		Status:       StatusPending,
		IsAnonymous:  req.IsAnonymous,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Latitude != nil {
		rep.Latitude.Float64 = *req.Latitude
		rep.Latitude.Valid = true
	}
	if req.Longitude != nil {
		rep.Longitude.Float64 = *req.Longitude
		rep.Longitude.Valid = true
	}

	taskID, err := s.repo.Create(ctx, rep)
	if err != nil {
		return nil, err
	}

	return &CreateReportResponse{
		ReportID:  rep.ID,
		TaskID:    taskID,
		Status:    rep.Status,
		CreatedAt: rep.CreatedAt,
	}, nil
}

// ListMy returns the citizen's own reports with task state and photo URLs.
func (s *Service) ListMy(ctx context.Context, citizenID uuid.UUID) ([]*OwnReport, error) {
	reports, err := s.repo.ListByCitizen(ctx, citizenID)
	if err != nil {
		return nil, err
	}
	for _, rep := range reports {
		rep.PhotoURL = s.urls.URL(rep.PhotoKey)
	}
	return reports, nil
}

// ListPending returns the moderation queue, newest first.
func (s *Service) ListPending(ctx context.Context) ([]*PendingReport, error) {
	reports, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	for _, rep := range reports {
		rep.PhotoURL = s.urls.URL(rep.PhotoKey)
		if rep.IsAnonymous {
			rep.CitizenName = "Anonymous"
			rep.CitizenEmail = ""
		}
	}
	return reports, nil
}

// Validate applies a moderator verdict. Accepting marks the report valid,
// rejecting marks it invalid; either way the paired task is reset to the
// unassigned pool. A moderator may re-validate a report in any status.
func (s *Service) Validate(ctx context.Context, reportID uuid.UUID, req *ValidateReportRequest) error {
	rep, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if rep == nil {
		return ErrReportNotFound
	}

	status := StatusInvalid
	if req.Valid() {
		status = StatusValid
	}

	if err := s.repo.Validate(ctx, reportID, status, req.Notes); err != nil {
		return err
	}

	if status == StatusValid {
		// Accrual failures must not undo the committed verdict; tiers are
		// re-evaluated on the next rewards read anyway.
		if err := s.accruer.Accrue(ctx, rep.CitizenID); err != nil {
			log.Warn().Err(err).
				Str("report_id", reportID.String()).
				Str("citizen_id", rep.CitizenID.String()).
				Msg("reward accrual after validation failed")
		}
	}

	return nil
}

// Assign hands a report's task to a specific volunteer. Any non-invalid
// report is assignable; the target must hold the volunteer or admin role.
func (s *Service) Assign(ctx context.Context, reportID uuid.UUID, req *AssignReportRequest) error {
	rep, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if rep == nil {
		return ErrReportNotFound
	}
	if !rep.IsAssignable() {
		return ErrReportNotAssigned
	}

	volunteerID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return ErrInvalidVolunteer
	}

	target, err := s.users.GetByID(ctx, volunteerID)
	if err != nil {
		return err
	}
	if target == nil || !target.CanWorkTasks() {
		return ErrInvalidVolunteer
	}

	return s.repo.Assign(ctx, reportID, volunteerID)
}

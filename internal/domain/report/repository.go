package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines report data access. Every state transition runs as one
// transaction with the precondition re-checked by the conditional UPDATE.
type Repository interface {
	Create(ctx context.Context, rep *Report) (taskID uuid.UUID, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]*OwnReport, error)
	ListPending(ctx context.Context) ([]*PendingReport, error)

	// Validate moves the report to valid/invalid and resets its task to
	// pending with the volunteer cleared.
	Validate(ctx context.Context, id uuid.UUID, status Status, notes string) error

	// Assign moves report and task to assigned for the given volunteer.
	// Fails with ErrReportNotAssigned when the report is invalid.
	Assign(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rep *Report) (uuid.UUID, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO reports (
			id, citizen_id, category, description, severity, location_text,
			latitude, longitude, photo_key, status, is_anonymous, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`,
		rep.ID,
		rep.CitizenID,
		rep.Category,
		rep.Description,
		rep.Severity,
		rep.LocationText,
		rep.Latitude,
		rep.Longitude,
		rep.PhotoKey,
		rep.Status,
		rep.IsAnonymous,
		rep.CreatedAt,
		rep.UpdatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: insert report", ErrInternal)
	}

	// The paired task is born with the report, never on its own
	taskID := uuid.New()
	_, err = tx.ExecContext(ctx2, `
		INSERT INTO tasks (id, report_id, status)
		VALUES ($1, $2, 'pending')
	`, taskID, rep.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: insert task", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return taskID, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rep Report
	err := r.db.GetContext(ctx2, &rep, `SELECT * FROM reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get report", ErrInternal)
	}
	return &rep, nil
}

func (r *repository) ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]*OwnReport, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	reports := make([]*OwnReport, 0)
	err := r.db.SelectContext(ctx2, &reports, `
		SELECT r.*, t.id AS task_id, t.status AS task_status
		FROM reports r
		JOIN tasks t ON t.report_id = r.id
		WHERE r.citizen_id = $1
		ORDER BY r.created_at DESC
	`, citizenID)
	if err != nil {
		return nil, fmt.Errorf("%w: list own reports", ErrInternal)
	}
	return reports, nil
}

func (r *repository) ListPending(ctx context.Context) ([]*PendingReport, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	reports := make([]*PendingReport, 0)
	err := r.db.SelectContext(ctx2, &reports, `
		SELECT r.*, u.name AS citizen_name, u.email AS citizen_email
		FROM reports r
		JOIN users u ON u.id = r.citizen_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list pending reports", ErrInternal)
	}
	return reports, nil
}

func (r *repository) Validate(ctx context.Context, id uuid.UUID, status Status, notes string) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx2, `
		UPDATE reports
		SET status = $2, moderator_notes = $3, updated_at = now()
		WHERE id = $1
	`, id, status, notes)
	if err != nil {
		return fmt.Errorf("%w: update report status", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrReportNotFound
	}

	// Moderator override: any volunteer progress is discarded and the task
	// returns to the unassigned pool.
	_, err = tx.ExecContext(ctx2, `
		UPDATE tasks
		SET status = 'pending', assigned_volunteer_id = NULL, assigned_at = NULL
		WHERE report_id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("%w: reset task", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

func (r *repository) Assign(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx2, `
		UPDATE reports
		SET status = 'assigned', updated_at = now()
		WHERE id = $1 AND status <> 'invalid'
	`, id)
	if err != nil {
		return fmt.Errorf("%w: update report status", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrReportNotAssigned
	}

	_, err = tx.ExecContext(ctx2, `
		UPDATE tasks
		SET assigned_volunteer_id = $2, status = 'assigned', assigned_at = now()
		WHERE report_id = $1
	`, id, volunteerID)
	if err != nil {
		return fmt.Errorf("%w: assign task", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

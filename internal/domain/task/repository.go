package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines task data access. Claim, Start and Complete run as one
// transaction each, with preconditions re-checked by conditional UPDATEs so
// concurrent requests cannot both win; the paired report row is moved in
// lockstep and guarded against the invalid status inside the same
// transaction.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListAvailable(ctx context.Context, search string) ([]*AvailableTask, error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]*MyTask, error)
	ListManaged(ctx context.Context, filter *ManagedFilter) ([]*ManagedTask, error)

	Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error
	Start(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error

	// Complete marks the task done, records the proof row and returns the
	// citizen who owns the underlying report, so the caller can run reward
	// accrual.
	Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID, proof *Proof) (citizenID uuid.UUID, err error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new task repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Task
	err := r.db.GetContext(ctx2, &t, `SELECT * FROM tasks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get task", ErrInternal)
	}
	return &t, nil
}

func (r *repository) ListAvailable(ctx context.Context, search string) ([]*AvailableTask, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT t.id, t.report_id,
		       r.category, r.description, r.severity, r.location_text,
		       r.latitude, r.longitude, r.photo_key,
		       r.created_at AS report_created_at
		FROM tasks t
		JOIN reports r ON r.id = t.report_id
		WHERE t.status = 'pending' AND r.status IN ('pending', 'valid')
	`
	args := []interface{}{}
	if search != "" {
		query += ` AND (r.location_text ILIKE $1 OR r.description ILIKE $1 OR r.category ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY r.created_at DESC`

	tasks := make([]*AvailableTask, 0)
	if err := r.db.SelectContext(ctx2, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list available tasks", ErrInternal)
	}
	return tasks, nil
}

func (r *repository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]*MyTask, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tasks := make([]*MyTask, 0)
	err := r.db.SelectContext(ctx2, &tasks, `
		SELECT t.id, t.report_id, t.status, t.assigned_at, t.completed_at,
		       r.category, r.description, r.severity, r.location_text, r.photo_key,
		       p.photo_key AS proof_photo_key, p.notes AS proof_notes
		FROM tasks t
		JOIN reports r ON r.id = t.report_id
		LEFT JOIN proofs p ON p.task_id = t.id
		WHERE t.assigned_volunteer_id = $1
		ORDER BY t.assigned_at DESC NULLS LAST
	`, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list volunteer tasks", ErrInternal)
	}
	return tasks, nil
}

func (r *repository) ListManaged(ctx context.Context, filter *ManagedFilter) ([]*ManagedTask, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT t.id, t.report_id, t.status, t.assigned_at, t.completed_at,
		       r.category, r.description, r.severity, r.location_text,
		       r.status AS report_status,
		       u.name AS volunteer_name
		FROM tasks t
		JOIN reports r ON r.id = t.report_id
		LEFT JOIN users u ON u.id = t.assigned_volunteer_id
	`
	conditions := []string{}
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("r.category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(r.location_text ILIKE $%d OR r.description ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY r.created_at DESC`

	tasks := make([]*ManagedTask, 0)
	if err := r.db.SelectContext(ctx2, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list managed tasks", ErrInternal)
	}
	return tasks, nil
}

func (r *repository) Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	// First claim wins: the same conditional UPDATE that checks also writes,
	// so a losing concurrent claim affects zero rows.
	result, err := tx.ExecContext(ctx2, `
		UPDATE tasks
		SET assigned_volunteer_id = $2, status = 'assigned', assigned_at = now()
		WHERE id = $1
		  AND status IN ('pending', 'assigned')
		  AND (assigned_volunteer_id IS NULL OR assigned_volunteer_id = $2)
	`, id, volunteerID)
	if err != nil {
		return fmt.Errorf("%w: claim task", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrTaskAlreadyClaimed
	}

	result, err = tx.ExecContext(ctx2, `
		UPDATE reports
		SET status = 'assigned', updated_at = now()
		WHERE id = (SELECT report_id FROM tasks WHERE id = $1)
		  AND status <> 'invalid'
	`, id)
	if err != nil {
		return fmt.Errorf("%w: update report status", ErrInternal)
	}

	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrReportNotWorkable
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

func (r *repository) Start(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx2, `
		UPDATE tasks
		SET status = 'in_progress'
		WHERE id = $1
		  AND assigned_volunteer_id = $2
		  AND status <> 'completed'
	`, id, volunteerID)
	if err != nil {
		return fmt.Errorf("%w: start task", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrTaskNotOwned
	}

	result, err = tx.ExecContext(ctx2, `
		UPDATE reports
		SET status = 'in_progress', updated_at = now()
		WHERE id = (SELECT report_id FROM tasks WHERE id = $1)
		  AND status <> 'invalid'
	`, id)
	if err != nil {
		return fmt.Errorf("%w: update report status", ErrInternal)
	}

	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrReportNotWorkable
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

func (r *repository) Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID, proof *Proof) (uuid.UUID, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx2, `
		UPDATE tasks
		SET status = 'completed', completed_at = now()
		WHERE id = $1
		  AND assigned_volunteer_id = $2
		  AND status IN ('assigned', 'in_progress')
	`, id, volunteerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: complete task", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return uuid.Nil, ErrTaskNotCompletable
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO proofs (id, task_id, volunteer_id, photo_key, notes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		proof.ID,
		proof.TaskID,
		proof.VolunteerID,
		proof.PhotoKey,
		proof.Notes,
		proof.UploadedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: insert proof", ErrInternal)
	}

	var citizenID uuid.UUID
	err = tx.QueryRowxContext(ctx2, `
		UPDATE reports
		SET status = 'completed', updated_at = now()
		WHERE id = (SELECT report_id FROM tasks WHERE id = $1)
		  AND status <> 'invalid'
		RETURNING citizen_id
	`, id).Scan(&citizenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrReportNotWorkable
		}
		return uuid.Nil, fmt.Errorf("%w: update report status", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return citizenID, nil
}

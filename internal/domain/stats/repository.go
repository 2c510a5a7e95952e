package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// ErrInternal wraps store failures
var ErrInternal = errors.New("internal stats error")

// Repository reads aggregate counters from committed state
type Repository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new stats repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var snap Snapshot

	counters := []struct {
		dest  *int64
		query string
	}{
		{&snap.TotalReports, `SELECT COUNT(*) FROM reports`},
		{&snap.ActiveReports, `SELECT COUNT(*) FROM reports WHERE status <> 'invalid'`},
		{&snap.CompletedTasks, `SELECT COUNT(*) FROM tasks WHERE status = 'completed'`},
		{&snap.VolunteerCount, `SELECT COUNT(*) FROM users WHERE role = 'volunteer'`},
	}
	for _, c := range counters {
		if err := r.db.GetContext(ctx2, c.dest, c.query); err != nil {
			return nil, fmt.Errorf("%w: count query", ErrInternal)
		}
	}

	snap.LocationHotspots = make([]*Hotspot, 0)
	err := r.db.SelectContext(ctx2, &snap.LocationHotspots, `
		SELECT location_text, COUNT(*) AS report_count
		FROM reports
		WHERE status <> 'invalid'
		GROUP BY location_text
		ORDER BY report_count DESC, location_text ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: hotspot query", ErrInternal)
	}

	return &snap, nil
}

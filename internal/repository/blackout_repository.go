package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

// BlackoutRepo reads exclusion windows.  Recurring windows cannot be
// filtered by date range in SQL (they repeat every year), so those are
// always loaded; non-recurring windows are restricted to the range.
type BlackoutRepo struct {
	db *sql.DB
}

// NewBlackoutRepo returns a BlackoutRepo bound to the given database.
func NewBlackoutRepo(db *sql.DB) *BlackoutRepo { return &BlackoutRepo{db: db} }

// Relevant returns every window that could block a date within
// [from, to]: all recurring windows plus non-recurring ones intersecting
// the range.
func (r *BlackoutRepo) Relevant(ctx context.Context, from, to time.Time) ([]model.BlackoutWindow, error) {
	const q = `SELECT id, scope, scope_id, start_date, end_date, recurring_yearly, reason
	           FROM blackout_windows
	           WHERE recurring_yearly = 1
	              OR (start_date <= ? AND end_date >= ?)`
	rows, err := r.db.QueryContext(ctx, q, to.UTC().Format("2006-01-02"), from.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list blackout windows: %w", err)
	}
	defer rows.Close()

	var out []model.BlackoutWindow
	for rows.Next() {
		var w model.BlackoutWindow
		var scope string
		if err := rows.Scan(&w.ID, &scope, &w.ScopeID, &w.StartDate, &w.EndDate, &w.RecurringYearly, &w.Reason); err != nil {
			return nil, err
		}
		w.Scope = model.BlackoutScope(scope)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

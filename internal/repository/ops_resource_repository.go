package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
)

// OpsResourceRepo reads delivery crews, vehicles and their weekly shift
// templates.
type OpsResourceRepo struct {
	db *sql.DB
}

// NewOpsResourceRepo returns an OpsResourceRepo bound to the given database.
func NewOpsResourceRepo(db *sql.DB) *OpsResourceRepo { return &OpsResourceRepo{db: db} }

// ActiveByKind lists active resources of one kind ordered by ID.
func (r *OpsResourceRepo) ActiveByKind(ctx context.Context, kind model.ResourceKind) ([]model.OpsResource, error) {
	const q = `SELECT id, name, kind, is_active, created_at
	           FROM ops_resources
	           WHERE kind = ? AND is_active = 1
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list ops resources: %w", err)
	}
	defer rows.Close()

	var out []model.OpsResource
	for rows.Next() {
		var res model.OpsResource
		var k string
		if err := rows.Scan(&res.ID, &res.Name, &k, &res.Active, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.Kind = model.ResourceKind(k)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveTemplates loads the weekly templates of every active resource,
// keyed by resource ID.  The result includes both kinds; the resolver
// indexes into it by the IDs it already holds.
func (r *OpsResourceRepo) ActiveTemplates(ctx context.Context) (map[uint64][]model.TemplateSlot, error) {
	const q = `SELECT a.resource_id, a.day_of_week, a.start_clock, a.end_clock, a.is_available
	           FROM ops_resource_availability a
	           JOIN ops_resources o ON o.id = a.resource_id
	           WHERE o.is_active = 1`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list resource templates: %w", err)
	}
	defer rows.Close()

	templates := make(map[uint64][]model.TemplateSlot)
	for rows.Next() {
		var s model.TemplateSlot
		var day uint8
		if err := rows.Scan(&s.ResourceID, &day, &s.StartClock, &s.EndClock, &s.Available); err != nil {
			return nil, err
		}
		s.DayOfWeek = time.Weekday(day)
		templates[s.ResourceID] = append(templates[s.ResourceID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rentiva/slot-reservation/internal/model"
)

// ProductRepo provides read access to products and their units.  Product
// and unit rows are managed by external admin tooling; the engine only
// reads them.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// GetByID loads one product.  It returns ErrProductNotFound when the ID
// does not resolve.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = `SELECT id, name, breakdown_minutes, travel_buffer_minutes, is_active, created_at, updated_at
	           FROM products WHERE id = ?`
	var p model.Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.BreakdownMinutes, &p.TravelBufferMinutes, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ActiveUnits lists the active units of a product ordered by unit number
// so enumeration is deterministic across calls.
func (r *ProductRepo) ActiveUnits(ctx context.Context, productID uint64) ([]model.Unit, error) {
	const q = `SELECT id, product_id, unit_number, is_active, created_at
	           FROM units
	           WHERE product_id = ? AND is_active = 1
	           ORDER BY unit_number, id`
	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		var u model.Unit
		if err := rows.Scan(&u.ID, &u.ProductID, &u.UnitNumber, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return units, nil
}

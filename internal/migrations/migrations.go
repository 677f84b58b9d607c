// Package migrations applies the engine's schema at startup.  Statements
// are idempotent (CREATE TABLE IF NOT EXISTS) so repeated application on
// boot is safe; there is no down path.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		breakdown_minutes INT UNSIGNED NOT NULL DEFAULT 45,
		travel_buffer_minutes INT UNSIGNED NOT NULL DEFAULT 30,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS units (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		product_id BIGINT UNSIGNED NOT NULL,
		unit_number INT UNSIGNED NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_units_product_number (product_id, unit_number),
		KEY idx_units_product (product_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS ops_resources (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		kind ENUM('delivery_crew','vehicle') NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_ops_resources_kind (kind, is_active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS ops_resource_availability (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		resource_id BIGINT UNSIGNED NOT NULL,
		day_of_week TINYINT UNSIGNED NOT NULL,
		start_clock CHAR(5) NOT NULL,
		end_clock CHAR(5) NOT NULL,
		is_available TINYINT(1) NOT NULL DEFAULT 1,
		PRIMARY KEY (id),
		KEY idx_availability_resource (resource_id, day_of_week)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS blackout_windows (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		scope ENUM('global','product','unit') NOT NULL,
		scope_id BIGINT UNSIGNED NOT NULL DEFAULT 0,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		recurring_yearly TINYINT(1) NOT NULL DEFAULT 0,
		reason VARCHAR(255) NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY idx_blackouts_scope (scope, scope_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS soft_holds (
		id CHAR(36) NOT NULL,
		session_id VARCHAR(64) NOT NULL,
		unit_id BIGINT UNSIGNED NOT NULL,
		delivery_crew_id BIGINT UNSIGNED NOT NULL,
		pickup_crew_id BIGINT UNSIGNED NOT NULL,
		delivery_vehicle_id BIGINT UNSIGNED NOT NULL,
		pickup_vehicle_id BIGINT UNSIGNED NOT NULL,
		service_start DATETIME NOT NULL,
		service_end DATETIME NOT NULL,
		delivery_leg_start DATETIME NOT NULL,
		delivery_leg_end DATETIME NOT NULL,
		pickup_leg_start DATETIME NOT NULL,
		pickup_leg_end DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_soft_holds_session (session_id),
		KEY idx_soft_holds_unit (unit_id, service_start),
		KEY idx_soft_holds_expiry (expires_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		status ENUM('PENDING','CONFIRMED','CANCELLED') NOT NULL DEFAULT 'PENDING',
		event_date DATE NOT NULL,
		unit_id BIGINT UNSIGNED NOT NULL,
		delivery_crew_id BIGINT UNSIGNED NOT NULL,
		pickup_crew_id BIGINT UNSIGNED NOT NULL,
		delivery_vehicle_id BIGINT UNSIGNED NOT NULL,
		pickup_vehicle_id BIGINT UNSIGNED NOT NULL,
		service_start DATETIME NOT NULL,
		service_end DATETIME NOT NULL,
		delivery_leg_start DATETIME NOT NULL,
		delivery_leg_end DATETIME NOT NULL,
		pickup_leg_start DATETIME NOT NULL,
		pickup_leg_end DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_bookings_unit (unit_id, service_start),
		KEY idx_bookings_status_created (status, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Apply executes every schema statement in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type MaintenanceSQL struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) *MaintenanceSQL {
	return &MaintenanceSQL{db: db}
}

// DeleteAll wipes tasks and users in one transaction.
func (r *MaintenanceSQL) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wipe: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`DELETE FROM tasks`, `DELETE FROM users`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return tx.Commit()
}

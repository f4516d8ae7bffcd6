// Package repository reads and writes the roles and role_permissions
// tables.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenacre-dev/farmdesk/internal/database"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// PermissionRepo handles role_permissions. It satisfies permission.Store.
type PermissionRepo struct {
	db *database.DB
}

// NewPermissionRepo returns a PermissionRepo backed by db.
func NewPermissionRepo(db *database.DB) *PermissionRepo {
	return &PermissionRepo{db: db}
}

// ListByRole returns every module row for roleName, ordered by path.
func (r *PermissionRepo) ListByRole(ctx context.Context, roleName string) ([]permission.Record, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
	SELECT role_name, module_path, can_view
	FROM role_permissions
	WHERE role_name = ?
	ORDER BY module_path`), roleName)
	if err != nil {
		return nil, fmt.Errorf("querying role permissions: %w", err)
	}
	defer rows.Close()

	var out []permission.Record
	for rows.Next() {
		var rec permission.Record
		if err := rows.Scan(&rec.RoleName, &rec.ModulePath, &rec.CanView); err != nil {
			return nil, fmt.Errorf("scanning role permission: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert creates or replaces the row for (RoleName, ModulePath).
func (r *PermissionRepo) Upsert(ctx context.Context, rec permission.Record) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	INSERT INTO role_permissions(role_name, module_path, can_view, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(role_name, module_path) DO UPDATE SET
	 can_view=excluded.can_view,
	 updated_at=CURRENT_TIMESTAMP`), rec.RoleName, rec.ModulePath, rec.CanView)
	if err != nil {
		return fmt.Errorf("upserting role permission: %w", err)
	}
	return nil
}

// Delete removes the row for (roleName, modulePath).
func (r *PermissionRepo) Delete(ctx context.Context, roleName, modulePath string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	DELETE FROM role_permissions WHERE role_name = ? AND module_path = ?`), roleName, modulePath)
	if err != nil {
		return fmt.Errorf("deleting role permission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("permission %s on %s: %w", roleName, modulePath, ErrNotFound)
	}
	return nil
}

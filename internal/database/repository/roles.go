package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenacre-dev/farmdesk/internal/database"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

// CustomRole is a row in the roles table.
type CustomRole struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleRepo handles custom roles.
type RoleRepo struct {
	db *database.DB
}

// NewRoleRepo returns a RoleRepo backed by db.
func NewRoleRepo(db *database.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

// Create inserts a custom role with a fresh id. Built-in role names are
// rejected.
func (r *RoleRepo) Create(ctx context.Context, name string) (CustomRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomRole{}, errors.New("role name is required")
	}
	if _, builtin := permission.ParseRole(name).Builtin(); builtin {
		return CustomRole{}, fmt.Errorf("%q is a built-in role", name)
	}

	role := CustomRole{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	INSERT INTO roles(id, name, created_at) VALUES (?, ?, ?)`), role.ID.String(), role.Name, role.CreatedAt)
	if err != nil {
		return CustomRole{}, fmt.Errorf("creating role %q: %w", name, err)
	}
	return role, nil
}

// GetByName returns the custom role called name.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (CustomRole, error) {
	var (
		role CustomRole
		id   string
	)
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
	SELECT id, name, created_at FROM roles WHERE name = ?`), name).Scan(&id, &role.Name, &role.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CustomRole{}, fmt.Errorf("role %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return CustomRole{}, fmt.Errorf("querying role %q: %w", name, err)
	}
	if role.ID, err = uuid.Parse(id); err != nil {
		return CustomRole{}, fmt.Errorf("role %q has invalid id %q: %w", name, id, err)
	}
	return role, nil
}

// List returns all custom roles ordered by name.
func (r *RoleRepo) List(ctx context.Context) ([]CustomRole, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	var out []CustomRole
	for rows.Next() {
		var (
			role CustomRole
			id   string
		)
		if err := rows.Scan(&id, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		if role.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("role %q has invalid id %q: %w", role.Name, id, err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// Resolve maps a role name to a permission.Role: built-in names map to
// built-in roles, known custom names carry their id, and unknown names
// become custom roles with a nil id.
func (r *RoleRepo) Resolve(ctx context.Context, name string) (permission.Role, error) {
	role := permission.ParseRole(name)
	if !role.IsCustom() {
		return role, nil
	}
	custom, err := r.GetByName(ctx, role.Name())
	if errors.Is(err, ErrNotFound) {
		return role, nil
	}
	if err != nil {
		return permission.Role{}, err
	}
	return permission.Custom(custom.ID, custom.Name), nil
}

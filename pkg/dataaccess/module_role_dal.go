package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const moduleRoleDalName = "module_role_dal"

const (
	insertModuleRoleSql = `INSERT INTO ModuleRole (RoleId) VALUES (?)`
	removeModuleRoleSql = `DELETE FROM ModuleRole WHERE RoleId = ?`
	getModuleRolesSql   = `SELECT RoleId FROM ModuleRole ORDER BY RoleId`
	isModuleRoleSql     = `SELECT RoleId FROM ModuleRole WHERE RoleId = ?`
)

type IModuleRoleDal interface {
	// AddModuleRole adds a role to the module roles.
	AddModuleRole(ctx context.Context, roleID int64) error

	// RemoveModuleRole removes a role from the module roles. Removing an unknown role does nothing.
	RemoveModuleRole(ctx context.Context, roleID int64) error

	// GetModuleRoles returns all module roles, nil if there are none.
	GetModuleRoles(ctx context.Context) ([]int64, error)

	// IsModuleRole reports whether the role is a module role.
	IsModuleRole(ctx context.Context, roleID int64) (bool, error)
}

func (c *connector) AddModuleRole(ctx context.Context, roleID int64) error {
	return c.withTx(ctx, moduleRoleDalName, "add_module_role", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertModuleRoleSql, roleID); err != nil {
			return fmt.Errorf("error inserting module role: %w", err)
		}
		return nil
	})
}

func (c *connector) RemoveModuleRole(ctx context.Context, roleID int64) error {
	return c.withTx(ctx, moduleRoleDalName, "remove_module_role", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, removeModuleRoleSql, roleID); err != nil {
			return fmt.Errorf("error removing module role: %w", err)
		}
		return nil
	})
}

func (c *connector) GetModuleRoles(ctx context.Context) ([]int64, error) {
	var roles []int64
	err := c.withRead(ctx, moduleRoleDalName, "get_module_roles", func(db *sqlx.DB) error {
		if err := db.SelectContext(ctx, &roles, getModuleRolesSql); err != nil {
			return fmt.Errorf("error getting module roles: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		return nil, nil
	}
	return roles, nil
}

func (c *connector) IsModuleRole(ctx context.Context, roleID int64) (bool, error) {
	found := false
	err := c.withRead(ctx, moduleRoleDalName, "is_module_role", func(db *sqlx.DB) error {
		// Get the role.
		var id int64
		err := db.GetContext(ctx, &id, isModuleRoleSql, roleID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return fmt.Errorf("error getting module role: %w", err)
		}
		found = true
		return nil
	})
	return found, err
}

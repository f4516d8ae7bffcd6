package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greenacre-dev/farmdesk/internal/auditlog"
	"github.com/greenacre-dev/farmdesk/internal/database"
	"github.com/greenacre-dev/farmdesk/internal/database/repository"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

func newAccessCommand() *cobra.Command {
	accessCmd := &cobra.Command{
		Use:   "access",
		Short: "Check and manage page access",
	}
	accessCmd.AddCommand(
		newAccessCheckCommand(),
		newAccessCanCommand(),
		newAccessRoutesCommand(),
		newAccessGrantCommand(),
		newAccessRevokeCommand(),
	)
	return accessCmd
}

func newAccessCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <role> <path>",
		Short: "Decide whether a role may view a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			role := e.lookupRole(ctx, db, args[0])
			d := e.resolver(db, nil).Allowed(ctx, role, args[1])

			verdict := "denied"
			if d.Allowed {
				verdict = "allowed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s (%s)\n", role.Name(), verdict, args[1], d.Tier)
			return nil
		},
	}
}

// lookupRole resolves name against the roles table. When the lookup
// fails the parsed name is used, so the dynamic tier can still match it.
func (e *env) lookupRole(ctx context.Context, db *database.DB, name string) permission.Role {
	role, err := repository.NewRoleRepo(db).Resolve(ctx, name)
	if err != nil {
		e.logger.Warn("role lookup failed", zap.String("role", name), zap.Error(err))
		return permission.ParseRole(name)
	}
	return role
}

func newAccessCanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "can <role> <resource> <action>",
		Short: "Check a built-in role's resource permission",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := permission.ParseRole(args[0])
			verdict := "no"
			if permission.HasPermission(role, args[1], args[2]) {
				verdict = "yes"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n", role.Name(), args[2], args[1], verdict)
			return nil
		},
	}
}

func newAccessRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes <role>",
		Short: "List the pages a role may view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			role := e.lookupRole(ctx, db, args[0])
			for _, p := range e.resolver(db, nil).VisibleRoutes(ctx, role, nil) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newAccessGrantCommand() *cobra.Command {
	var deny bool

	cmd := &cobra.Command{
		Use:   "grant <role> <path>",
		Short: "Set a role's dynamic access to a page",
		Long: "Set a role's dynamic access to a page. A dynamic row only matters when\n" +
			"the static route map denies the role, so --deny cannot hide a page a\n" +
			"built-in role already sees.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rec := permission.Record{RoleName: permission.ParseRole(args[0]).Name(), ModulePath: args[1], CanView: !deny}
			if rec.RoleName == "" {
				return errors.New("role name is required")
			}
			if err := repository.NewPermissionRepo(db).Upsert(cmd.Context(), rec); err != nil {
				return err
			}

			e.audit(auditlog.ActionGrant, rec.RoleName, fmt.Sprintf("%s can_view=%t", rec.ModulePath, rec.CanView))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s can_view=%t\n", rec.RoleName, rec.ModulePath, rec.CanView)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deny, "deny", false, "store an explicit deny instead of a grant")
	return cmd
}

func newAccessRevokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <role> <path>",
		Short: "Remove a role's dynamic row for a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			roleName := permission.ParseRole(args[0]).Name()
			if err := repository.NewPermissionRepo(db).Delete(cmd.Context(), roleName, args[1]); err != nil {
				return err
			}

			e.audit(auditlog.ActionRevoke, roleName, args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %s\n", roleName, args[1])
			return nil
		},
	}
}

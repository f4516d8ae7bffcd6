package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/auditlog"
	"github.com/greenacre-dev/farmdesk/internal/database/repository"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

func newRoleCommand() *cobra.Command {
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Manage custom roles",
	}
	roleCmd.AddCommand(newRoleCreateCommand(), newRoleListCommand())
	return roleCmd
}

func newRoleCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a custom role",
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

			role, err := repository.NewRoleRepo(db).Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			e.audit(auditlog.ActionCreateRole, role.Name, role.ID.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Created role %s (%s)\n", role.Name, role.ID)
			return nil
		},
	}
}

func newRoleListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom roles",
		Args:  cobra.NoArgs,
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

			custom, err := repository.NewRoleRepo(db).List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tKIND\tID")
			for _, b := range permission.BuiltinRoles {
				fmt.Fprintf(w, "%s\tbuilt-in\t\n", b)
			}
			for _, r := range custom {
				fmt.Fprintf(w, "%s\tcustom\t%s\n", r.Name, r.ID)
			}
			return w.Flush()
		},
	}
}

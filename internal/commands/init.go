package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/accounts"
	"github.com/greenacre-dev/farmdesk/internal/config"
	"github.com/greenacre-dev/farmdesk/internal/database"
)

func newInitCommand() *cobra.Command {
	var name string
	var profile string
	var sites []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new farmdesk directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, name, profile, sites); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized farmdesk for %s at %s\n", name, absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "farm name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&profile, "profile", accounts.ProfileMixed, "business profile: dairy, poultry or mixed")
	cmd.Flags().StringSliceVar(&sites, "site", nil, "farm site (repeatable)")

	return cmd
}

func runInit(dir, name, profile string, sites []string) error {
	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, profile)
	cfg.Business.Sites = sites
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.NewService(accounts.DefaultChart(profile)).Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := cfg.Database.DSN + "\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := database.Migrate(cfg.Database.Driver, filepath.Join(dir, cfg.Database.DSN)); err != nil {
		return fmt.Errorf("creating permissions database: %w", err)
	}
	return nil
}

package commands

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/api"
	"github.com/greenacre-dev/farmdesk/internal/database/repository"
	"github.com/greenacre-dev/farmdesk/internal/ledger"
	"github.com/greenacre-dev/farmdesk/internal/metrics"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the access and reporting API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			books, err := ledger.OpenBooks(e.root)
			if err != nil {
				return err
			}
			if err := e.migrate(); err != nil {
				return err
			}
			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			reg := metrics.NewRegistry()
			resolver := e.resolver(db, metrics.NewPermissionMetrics(reg))

			gin.SetMode(gin.ReleaseMode)
			srv := api.NewServer(books, resolver,
				api.WithLogger(e.logger),
				api.WithRegistry(reg),
				api.WithRoles(repository.NewRoleRepo(db)))

			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from farmdesk.yaml)")
	return cmd
}

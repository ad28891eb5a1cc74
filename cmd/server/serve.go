package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ecoindus/site-backend-go/internal/api"
	"github.com/ecoindus/site-backend-go/internal/database"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if !logrus.IsLevelEnabled(logrus.DebugLevel) {
				gin.SetMode(gin.ReleaseMode)
			}

			// 初始化数据库
			db, err := database.Setup(database.Config{Path: cfg.DBPath})
			if err != nil {
				return err
			}
			defer db.Close()

			router, stopRouter := api.SetupRouter(cfg, db)
			defer stopRouter()

			srv := &http.Server{
				Addr:    cfg.Port,
				Handler: router,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logrus.WithFields(logrus.Fields{
					"addr":  cfg.Port,
					"admin": cfg.AdminEnabled(),
				}).Info("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logrus.Info("shutting down server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				logrus.WithError(err).Error("server stopped with error")
				return err
			}
			logrus.Info("server stopped")
			return nil
		},
	}
}

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(database.Config{Path: cfg.DBPath})
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.NewMigrationManager(db).RunMigrations()
			if err != nil {
				return err
			}
			logrus.WithField("applied", applied).Info("migrations complete")
			return nil
		},
	}
}

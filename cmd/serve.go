package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"print-shop/internal/wire"
	"print-shop/pkg/mailer"
	"print-shop/pkg/session"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, logger, repos, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("status_policy", config.App.StatusPolicy),
	)

	disk, err := storage.Open(ctx, config.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", config.Storage.Driver, err)
	}

	sessions, closeSessions, err := openSessions(ctx, config.Session)
	if err != nil {
		return err
	}
	defer closeSessions()

	app := wire.Wiring(wire.Deps{
		Repo:     repos,
		Disk:     disk,
		Sessions: sessions,
		Mailer:   mailer.New(config.Email, logger),
	}, config, logger)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

func openSessions(ctx context.Context, config utils.SessionConfig) (session.Store, func(), error) {
	opts := session.DefaultOptions()
	if config.CookieName != "" {
		opts.CookieName = config.CookieName
	}
	if config.TTL > 0 {
		opts.TTL = config.TTL
	}

	switch config.Driver {
	case "redis":
		store, err := session.NewRedisStore(ctx, config.RedisAddr, config.RedisPassword, opts)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		store, err := session.NewCookieStore(config.Secret, opts)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

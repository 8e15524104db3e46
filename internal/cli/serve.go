package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/spf13/cobra"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/handler"
	"github.com/set-night/o2ledger/internal/middleware"
	"github.com/set-night/o2ledger/internal/portal"
	"github.com/set-night/o2ledger/internal/service"
	"github.com/set-night/o2ledger/internal/telegram"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web portal and the Telegram bot",
		Long: `Apply migrations, then serve the JSON portal over HTTP.

The Telegram bot is started as well when BOT_TOKEN is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts.Config)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	pool, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrateUp(cfg); err != nil {
		return err
	}

	leaderboard := service.NewLeaderboardService(store)
	employees := service.NewEmployeeService(store, leaderboard)
	principals := service.NewPrincipalService(store)

	var b *bot.Bot
	tgLogger := telegram.NewTelegramLogger(nil, cfg)
	if cfg.BotEnabled() {
		// tgLogger is swapped for the bot-backed one below
		reporter := middleware.ReporterFunc(func(err error, where string) {
			tgLogger.LogError(err, where)
		})
		b, err = bot.New(cfg.BotToken, bot.WithMiddlewares(
			middleware.Recover(reporter),
			middleware.RateLimit(cfg),
			middleware.EmployeeLoader(employees),
			middleware.Logging(),
		))
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}
		tgLogger = telegram.NewTelegramLogger(b, cfg)
	}

	ledger := service.NewLedger(store)
	projects := service.NewProjectService(store, ledger, tgLogger)
	activities := service.NewActivityService(store, ledger, tgLogger)

	srv := portal.NewServer(portal.Options{
		Secret:         []byte(cfg.JWTSecret),
		MetricsEnabled: cfg.MetricsEnabled,
		Principals:     principals,
		Employees:      employees,
		Projects:       projects,
		Activities:     activities,
		Leaderboard:    leaderboard,
		Errors:         tgLogger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: config.HTTPReadHeaderTimeout,
		ReadTimeout:       config.HTTPReadTimeout,
		WriteTimeout:      config.HTTPWriteTimeout,
		IdleTimeout:       config.HTTPIdleTimeout,
	}

	botDone := make(chan struct{})
	if b != nil {
		me, err := b.GetMe(ctx)
		if err != nil {
			return fmt.Errorf("get bot info: %w", err)
		}

		h := handler.New(handler.Deps{
			Bot:         b,
			Cfg:         cfg,
			Employees:   employees,
			Projects:    projects,
			Activities:  activities,
			Leaderboard: leaderboard,
			TgLogger:    tgLogger,
		})
		h.Register()

		if cfg.DropPendingUpdates {
			if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
				slog.Warn("failed to drop pending updates", "error", err)
			}
		}

		go func() {
			defer close(botDone)
			slog.Info("starting bot", "username", me.Username, "id", me.ID, "admins", cfg.AdminIDsString())
			b.Start(ctx)
		}()
	} else {
		slog.Info("bot disabled, BOT_TOKEN is not set")
		close(botDone)
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting portal", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("portal: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("could not stop portal gracefully", "error", err)
		if err := httpServer.Close(); err != nil {
			return fmt.Errorf("force stop portal: %w", err)
		}
	}

	<-botDone
	slog.Info("stopped gracefully")
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/courtside/internal/api"
	"github.com/genricoloni/courtside/internal/backend"
	"github.com/genricoloni/courtside/internal/config"
	"github.com/genricoloni/courtside/internal/controller"
	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/mpris"
	"github.com/genricoloni/courtside/internal/progress"
	"github.com/genricoloni/courtside/internal/render"
	"github.com/genricoloni/courtside/internal/speech"
	"github.com/genricoloni/courtside/internal/transport"
	"github.com/genricoloni/courtside/internal/tts"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// speechEngine is a speech engine with a background start step
type speechEngine interface {
	domain.SpeechEngine
	Start(ctx context.Context) error
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the playback daemon and its control API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			app := fx.New(
				appOptions(settings),
				fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: log}
				}),
			)

			// Handle graceful shutdown
			sigCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := app.Start(sigCtx); err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			<-sigCtx.Done()

			if err := app.Stop(context.Background()); err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			return nil
		},
	}
}

// appOptions is the dependency graph of the daemon
func appOptions(settings config.Settings) fx.Option {
	return fx.Options(
		fx.Supply(settings),

		// Provide dependencies
		fx.Provide(
			newLogger,
			config.NewAppConfig,
			fx.Annotate(
				func(c *config.AppConfig) *config.AppConfig { return c },
				fx.As(new(domain.Config)),
			),
			mpris.NewBus,
			newSpeechEngine,
			newBackendClient,
			api.NewHub,
			newTransport,
			newSpeechPlayer,
			newController,
			newReporter,
			render.NewStripSize,
			render.NewStripRenderer,
			newAPI,
			newServer,
		),

		// Lifecycle hooks
		fx.Invoke(registerHooks),
	)
}

// newLogger creates a new zap logger instance
func newLogger(settings config.Settings) (*zap.Logger, error) {
	if settings.Debug {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newSpeechEngine(logger *zap.Logger) (speechEngine, error) {
	return tts.NewEngine(logger)
}

func newBackendClient(logger *zap.Logger, cfg *config.AppConfig) (*backend.Client, error) {
	return backend.NewClient(logger, cfg.GetBackendURL())
}

// newTransport binds the configured MPRIS players as the primary and secondary streams
func newTransport(logger *zap.Logger, cfg *config.AppConfig, bus *mpris.Bus, hub *api.Hub) *transport.Transport {
	primary := bus.Player(cfg.GetPrimaryPlayer())

	// A nil *mpris.Player must not become a non-nil interface
	var secondary domain.MediaEngine
	if name := cfg.GetSecondaryPlayer(); name != "" {
		secondary = bus.Player(name)
	}

	opts := []transport.Option{
		transport.WithTolerance(cfg.GetEventTolerance()),
		transport.WithClassifier(cfg.NewClassifier()),
	}
	if cfg.GetSeekMode() == "settle" {
		opts = append(opts, transport.WithSettleDelays(transport.LegacyPreSeekDelay, transport.LegacyPostSeekDelay))
	}

	return transport.New(logger, primary, secondary, hub, opts...)
}

func newSpeechPlayer(logger *zap.Logger, cfg *config.AppConfig, engine speechEngine, hub *api.Hub) *speech.Player {
	settings := speech.DefaultSettings()
	settings.Rate = cfg.GetSpeechRate()
	return speech.NewPlayer(logger, engine, hub, settings)
}

func newController(
	logger *zap.Logger,
	cfg *config.AppConfig,
	bus *mpris.Bus,
	tr *transport.Transport,
	sp *speech.Player,
	client *backend.Client,
) *controller.Controller {
	opts := controller.Options{
		TickInterval:   cfg.GetTickInterval(),
		CommentaryFile: cfg.GetCommentaryFile(),
	}
	if name := cfg.GetSecondaryPlayer(); name != "" {
		opts.Secondary = bus.Player(name)
	}
	return controller.New(logger, bus.Player(cfg.GetPrimaryPlayer()), tr, sp, client, opts)
}

func newReporter(logger *zap.Logger, cfg *config.AppConfig, client *backend.Client, hub *api.Hub) *progress.Reporter {
	return progress.NewReporter(logger, client, hub, hub, progress.Options{
		Mode:     progress.Mode(cfg.GetProgressMode()),
		Interval: cfg.GetProgressInterval(),
	})
}

// newAPI uploads through the same backend client as the reporter and the controller,
// so the whole job runs in one backend session
func newAPI(
	logger *zap.Logger,
	ctrl *controller.Controller,
	reporter *progress.Reporter,
	renderer *render.StripRenderer,
	hub *api.Hub,
	client *backend.Client,
) *api.API {
	return api.NewAPI(logger, ctrl, reporter, renderer, hub, client)
}

func newServer(logger *zap.Logger, cfg domain.Config, a *api.API) *api.Server {
	return api.NewServer(logger, cfg.GetListenAddr(), a)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	engine speechEngine,
	bus *mpris.Bus,
	ctrl *controller.Controller,
	server *api.Server,
) {
	// Background loops outlive the start context
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := engine.Start(runCtx); err != nil {
				return fmt.Errorf("failed to start speech engine: %w", err)
			}
			if err := bus.Start(runCtx); err != nil {
				return fmt.Errorf("failed to connect to media players: %w", err)
			}
			if err := ctrl.Start(runCtx); err != nil {
				return err
			}
			if err := server.Start(ctx); err != nil {
				return err
			}
			logger.Info("Courtside daemon started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			defer cancel()

			if err := server.Stop(ctx); err != nil {
				logger.Warn("Control API shutdown failed", zap.Error(err))
			}
			if err := ctrl.Stop(ctx); err != nil {
				logger.Warn("Controller stop failed", zap.Error(err))
			}
			return bus.Stop(ctx)
		},
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rental/cmd"
	httpadapter "rental/internal/adapters/in/http"
	"rental/internal/adapters/out/postgres/migrations"
	"rental/internal/adapters/out/viacep"
	"rental/internal/core/ports"
	"rental/internal/jobs"
	"rental/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() (cmd.Config, error) { return cmd.LoadConfig(".env") },
			newLogger,
			newGormDB,
			newAddressLookup,
			cmd.NewCompositionRoot,
			newEcho,
			newJobManager,
		),
		fx.Invoke(registerLifecycle),
	)

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg cmd.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.AppEnv)
}

// newGormDB migrates the schema before handing out the connection.
func newGormDB(cfg cmd.Config) (*gorm.DB, error) {
	if err := migrations.Up(cfg.DSN()); err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func newAddressLookup(cfg cmd.Config, l *zap.Logger) (ports.AddressLookup, error) {
	return viacep.NewClient(cfg.AddressLookupURL, cfg.AddressLookupTimeout, logger.Component(l, "viacep"))
}

func newEcho(cfg cmd.Config, root cmd.CompositionRoot, l *zap.Logger) (*echo.Echo, error) {
	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateListOrdersQueryHandler(),
		root.Clock(),
	)
	return httpadapter.NewEcho(server, []byte(cfg.JWTSecret), logger.Component(l, "http"))
}

func newJobManager(cfg cmd.Config, root cmd.CompositionRoot, l *zap.Logger) *jobs.JobManager {
	return jobs.NewJobManager(root.CreateGetOverdueOrdersQueryHandler(), cfg.OverdueJobSchedule, l)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     cmd.Config
	Logger     *zap.Logger
	DB         *gorm.DB
	Echo       *echo.Echo
	Jobs       *jobs.JobManager
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := p.Jobs.StartAll(); err != nil {
				return err
			}

			p.Logger.Info("starting rental service", zap.String("addr", p.Config.ListenAddress()))
			go func() {
				if err := p.Echo.Start(p.Config.ListenAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", zap.Error(err))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Jobs.StopAll()

			shutdownCtx, cancel := context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			defer cancel()

			if err := p.Echo.Shutdown(shutdownCtx); err != nil {
				return err
			}

			if sqlDB, err := p.DB.DB(); err == nil {
				_ = sqlDB.Close()
			}

			p.Logger.Info("rental service stopped")
			_ = p.Logger.Sync()
			return nil
		},
	})
}

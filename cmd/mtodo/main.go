package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/mtodo/internal/config"
	"github.com/xxxsen/mtodo/internal/db"
	"github.com/xxxsen/mtodo/internal/handler"
	"github.com/xxxsen/mtodo/internal/job"
	"github.com/xxxsen/mtodo/internal/middleware"
	"github.com/xxxsen/mtodo/internal/repo"
	"github.com/xxxsen/mtodo/internal/schedule"
	"github.com/xxxsen/mtodo/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mtodo",
		Short: "mtodo backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run mtodo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
	)

	userRepo := repo.NewUserRepo(conn)
	todoRepo := repo.NewTodoRepo(conn)

	if err := service.SeedFixtureUsers(context.Background(), userRepo); err != nil {
		return fmt.Errorf("seed fixture users: %w", err)
	}

	jwtTTL := time.Duration(cfg.JWTTTLMinutes) * time.Minute
	credentials := service.WrapLruCache(userRepo, cfg.UserCache.Size, time.Duration(cfg.UserCache.TTLSeconds)*time.Second)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), jwtTTL)
	todoService := service.NewTodoService(todoRepo)
	userService := service.NewUserService(userRepo)

	deps := handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService),
		Todos:       handler.NewTodoHandler(todoService),
		Users:       handler.NewUserHandler(userService),
		Credentials: credentials,
		JWTSecret:   []byte(cfg.JWTSecret),
		LoginRate:   time.Duration(cfg.LoginRateMs) * time.Millisecond,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.UsageReportCron != "" {
		if err := scheduler.AddJob(job.NewUsageReportJob(userRepo, todoRepo), cfg.UsageReportCron); err != nil {
			return fmt.Errorf("schedule usage report: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

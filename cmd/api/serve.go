package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"instime/cmd/internal/config"
	"instime/cmd/internal/domain/database"
	"instime/cmd/internal/domain/database/repository"
	"instime/cmd/internal/routes"
	"instime/cmd/internal/service"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.RequireSecret(); err != nil {
			return err
		}
		out := config.SetupLogging(cfg)

		db, err := database.Init(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		e, err := newServer(cfg, db, out)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Infof("listening on %s", addr)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

// newServer wires repositories, services and routes into an echo instance.
func newServer(cfg *config.Config, db *gorm.DB, out io.Writer) (*echo.Echo, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	validators.Register(validate)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	freetimeRepo := repository.NewFreetimeRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	tx := repository.NewTransactor(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, tokens)
	taskService := service.NewTaskService(taskRepo, freetimeRepo, tx, validate, loc)
	freetimeService := service.NewFreetimeService(freetimeRepo, tx, validate, loc)
	planService := service.NewPlanService(taskRepo, freetimeRepo, blockRepo, tx, loc)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(out)
	e.Logger.SetLevel(config.ParseLevel(cfg.LogLevel))

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	routes.Mount(e, &routes.Handlers{
		Users:     routes.NewUserDefault(userService),
		Tasks:     routes.NewTaskDefault(taskService),
		Freetimes: routes.NewFreetimeDefault(freetimeService),
		Plans:     routes.NewPlanDefault(planService),
	}, tokens)

	return e, nil
}

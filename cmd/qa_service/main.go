package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qa_service/internal/auth"
	"qa_service/internal/config"
	"qa_service/internal/handler"
	"qa_service/internal/mail"
	"qa_service/internal/service"
	"qa_service/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	//PARSE ARGS
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the YAML config file")

	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		log.Fatal("failed get config path from flags or CONFIG_PATH")
	}

	cfg := config.MustLoadConfig(configPath)

	//INIT LOGGER
	lgr := setupLogger(cfg.Env)
	lgr.Info("starting qa service", slog.String("env", cfg.Env), slog.String("db_driver", cfg.DB.Driver))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	//INIT DB
	st, err := setupStorage(cfg)
	if err != nil {
		lgr.Error("failed to init storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := st.Close(ctx); err != nil {
			lgr.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	//INIT SERVICES
	tokens, err := auth.NewTokenService(cfg.JWT, !cfg.IsDevelopment())
	if err != nil {
		lgr.Error("failed to init token service", slog.Any("error", err))
		os.Exit(1)
	}

	mailer := mail.NewSMTPSender(cfg.SMTP)
	srvc := service.NewService(st, tokens, mailer, cfg.ResetPasswordURL, lgr)

	h := handler.NewHandler(srvc, tokens, handler.Options{
		AllowHeaderToken: cfg.JWT.AllowHeaderToken,
		AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
	}, lgr)

	//INIT SERVER
	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      h.InitRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		lgr.Info("starting http server", slog.String("address", cfg.HTTPServer.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Error("http server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	lgr.Info("shutting down", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lgr.Error("server forced to shutdown", slog.Any("error", err))
	}

	lgr.Info("server stopped")
}

func setupStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.DB.Driver == "memory" {
		return storage.NewMemoryStorage(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.Timeout)
	defer cancel()

	return storage.NewMongoStorage(ctx, cfg.DB.URI, cfg.DB.Name, cfg.DB.Timeout)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}

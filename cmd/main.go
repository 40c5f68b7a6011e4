package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nimbus-sync/nimbus/internal/auth"
	"github.com/nimbus-sync/nimbus/internal/auth/google"
	"github.com/nimbus-sync/nimbus/internal/auth/jwt"
	"github.com/nimbus-sync/nimbus/internal/auth/otp"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/ctrl"
	hdl "github.com/nimbus-sync/nimbus/internal/hdl/http"
	"github.com/nimbus-sync/nimbus/internal/observability/metrics/prometheus"
	"github.com/nimbus-sync/nimbus/internal/observability/tracing/jaeger"
	"github.com/nimbus-sync/nimbus/internal/repo/cache"
	"github.com/nimbus-sync/nimbus/internal/repo/db"
	"github.com/nimbus-sync/nimbus/internal/repo/s3"
	"github.com/nimbus-sync/nimbus/internal/smtp"
	"go.uber.org/zap"
)

const envPath = ".env"
const shutdownTimeout = 10 * time.Second

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	case "dev":
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad(envPath)
	mustRegisterLogger(conf.Server.Mode)

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	redis := cache.New(conf.Redis)
	repo := db.New(conf)
	au := jwt.New(conf)

	svc := ctrl.New(
		repo,
		redis,
		au,
		auth.New(conf),
		otp.New(),
		smtp.New(conf),
		google.New(conf),
		s3.New(conf.Minio),
	)
	h := hdl.New(au, svc, conf.Server.ClientURL)

	zap.L().Info(
		fmt.Sprintf(
			"Starting server on %v://%v:%v",
			conf.Server.Scheme,
			conf.Server.Domain,
			conf.Server.Port,
		),
	)
	go h.Start(conf.Server.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := h.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing handler", zap.Error(err))
	}

	if err := redis.Close(); err != nil {
		zap.L().Warn("Failed to close connection to Redis: ", zap.Error(err))
	}

	if err := repo.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}

	os.Exit(0)
}

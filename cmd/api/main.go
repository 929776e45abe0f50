package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellness-platform/internal/appointments"
	"wellness-platform/internal/auth"
	"wellness-platform/internal/call"
	"wellness-platform/internal/config"
	"wellness-platform/internal/history"
	"wellness-platform/internal/httpapi"
	"wellness-platform/internal/media"
	"wellness-platform/internal/notify"
	"wellness-platform/internal/signaling"
	"wellness-platform/pkg/logger"
	"wellness-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Signaling rides redis pub/sub so both API nodes see every broadcast.
	transport := signaling.NewRedisTransport(rdb, log)

	notifier := notify.NewService(notify.NewPostgresRepo(db), notify.LogProvider{Log: log}, log)
	records := history.NewService(history.NewPostgresRepo(db))
	apts := appointments.NewService(appointments.NewPostgresRepo(db))

	callManager := call.NewManager(call.Config{
		Transport:    transport,
		Engines:      func() media.Engine { return media.NewWebRTCEngine(cfg.Call.ICEServers) },
		Notifier:     notifier,
		History:      records,
		Appointments: apts,
		Redis:        rdb,
		Logger:       log,

		RingTimeout:     cfg.Call.RingTimeout,
		MaxParticipants: cfg.Call.MaxParticipants,
		RoomSlotTTL:     cfg.Call.RoomSlotTTL,
	})

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	handlers := httpapi.Handlers{
		Auth:    authManager,
		Calls:   callManager,
		History: records,
	}
	gateway := httpapi.NewGateway(transport, callManager, log)

	registerRoutes(r, auth.RequireAccessToken(authManager), handlers, gateway)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

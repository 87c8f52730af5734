package main // entry point for the blog and contact API

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/wizonweb/wizon-server/internal/config"
	"github.com/wizonweb/wizon-server/internal/database"
	"github.com/wizonweb/wizon-server/internal/handler"
	"github.com/wizonweb/wizon-server/internal/logging"
	"github.com/wizonweb/wizon-server/internal/mail"
	"github.com/wizonweb/wizon-server/internal/middleware"
	"github.com/wizonweb/wizon-server/internal/queue"
	"github.com/wizonweb/wizon-server/internal/repository"
	"github.com/wizonweb/wizon-server/internal/router"
	"github.com/wizonweb/wizon-server/internal/service"
	"github.com/wizonweb/wizon-server/internal/system"
	"github.com/wizonweb/wizon-server/internal/utils"
)

func main() {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	// no database, no service: fail fast without retrying
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureSchema(initCtx, db)
	initCancel()
	if err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	creds, err := utils.NewAdminCredentials(cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		slog.Error("prepare admin credentials", "error", err)
		os.Exit(1)
	}
	tokens := utils.NewTokenCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiresIn)

	cacheCfg, err := config.LoadCacheConfig()
	if err != nil {
		slog.Error("load cache config", "error", err)
		os.Exit(1)
	}
	rdb, err := config.NewRedisClient()
	if err != nil {
		slog.Warn("redis unavailable, blog cache disabled", "error", err)
	} else {
		defer rdb.Close()
	}
	blogCache := middleware.NewBlogCache(cacheCfg, rdb)

	notifier := mail.NewSMTPNotifier(cfg.Mail)
	if !notifier.Configured() {
		slog.Warn("EMAIL_USER/EMAIL_PASS not set, contact submissions will fail to notify")
	}
	var events service.EventPublisher
	if pub := queue.NewPublisher(cfg.RabbitMQURL); pub.Enabled() {
		events = pub
	}

	blogs := service.NewBlogService(repository.NewBlogRepo(db), blogCache)
	contacts := service.NewContactService(repository.NewContactRepo(db), notifier, cfg.Mail.To, events)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(requestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin()},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit("2M"))

	router.RegisterRoutes(e)
	router.RegisterAdmin(e, handler.NewAdminHandler(creds, tokens), handler.NewSystemHandler(system.NewReader(cfg.Env, started)), tokens)
	router.RegisterBlogs(e, handler.NewBlogHandler(blogs), blogCache, tokens)
	router.RegisterContacts(e, handler.NewContactHandler(contacts), tokens)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpServer.Addr, "env", cfg.Env, "origin", cfg.AllowedOrigin())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// requestLogger logs one line per request through slog.
func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dark0-7s/scams-20b.io/internal/config"
	"github.com/dark0-7s/scams-20b.io/internal/database"
	"github.com/dark0-7s/scams-20b.io/internal/handler"
	"github.com/dark0-7s/scams-20b.io/internal/router"
	"github.com/dark0-7s/scams-20b.io/internal/service"
)

// API is the HTTP + stream API application.
type API struct {
	cfg *config.Config
	srv *http.Server
	db  *gorm.DB
	hub *service.LiveHub
	log *zap.Logger
}

// NewAPI builds the application: validates config, runs migrations, opens the
// database, wires services and handlers.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	logger, _ := zap.NewProduction()
	if cfg.AppEnv == "development" {
		logger, _ = zap.NewDevelopment()
	}

	if cfg.HMACSecret == config.InsecureDefaultSecret {
		logger.Warn("SESSION_HMAC_SECRET not set, using insecure default")
	}

	hub := service.NewLiveHub(cfg.StreamBuffer, logger)
	sessionSvc := service.NewSessionService(db, hub, logger)
	attendanceSvc := service.NewAttendanceService(db, hub, cfg.HMACSecret, cfg.FreshnessWindowMS, logger)

	sessionHandler := handler.NewSessionHandler(sessionSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	stream := handler.NewStreamHandler(hub, sessionSvc, logger)
	streamWS := handler.NewStreamWSHandler(hub, sessionSvc, cfg.WSReadBufferSize, cfg.WSWriteBufferSize, logger)
	health := handler.NewHealthHandler()

	r := router.New(sessionHandler, attendanceHandler, stream, streamWS, health)

	// No WriteTimeout: SSE and WebSocket connections stay open for the whole
	// session.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, db: db, hub: hub, log: logger}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.srv.Addr)
	log.Printf("  Health:     %s/health", base)
	log.Printf("  Sessions:   %s/api/sessions", base)
	log.Printf("  Attendance: %s/api/attendance", base)
	log.Printf("  Stream:     %s/api/sessions/:id/stream (SSE)", base)
	log.Printf("  WebSocket:  ws://%s:%s/api/sessions/:id/ws", host, a.cfg.HTTPPort)

	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	_ = a.log.Sync()
	return nil
}

// Command server runs the Warp Battle Arena room-simulation service:
// a websocket room per named arena, HTTP introspection endpoints, and
// a Prometheus scrape target. Wiring follows the teacher's main.go
// (flag parsing, background server goroutine, signal-driven graceful
// shutdown), generalized from one global galaxy to the room registry.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/warpbattle/arena/internal/config"
	"github.com/warpbattle/arena/internal/ratelimit"
	"github.com/warpbattle/arena/internal/registry"
	"github.com/warpbattle/arena/internal/transport"
)

func main() {
	configFile := flag.String("config", "warpbattle", "Configuration file name (without extension)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(err)
	}

	log := newLogger(cfg.LogLevel, cfg.Environment)
	defer log.Sync()

	log.Info("starting warpbattle arena server",
		zap.String("listenAddr", cfg.ListenAddr),
		zap.String("environment", cfg.Environment),
	)

	reg := registry.New(log)
	ipLimit := ratelimit.NewIPLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	defer ipLimit.Stop()
	connCap := ratelimit.NewConnLimiter(cfg.MaxWSConnsPerIP)

	httpSrv := transport.NewServer(reg, ipLimit, connCap, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", transport.RequestLogger("/ws", httpSrv.HandleWebSocket))
	mux.HandleFunc("/api/rooms", transport.RequestLogger("/api/rooms", httpSrv.HandleRooms))
	mux.HandleFunc("/healthz", transport.RequestLogger("/healthz", httpSrv.HandleHealthz))
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	aMethods := handlers.AllowedMethods([]string{"GET", "OPTIONS"})
	aOrigins := handlers.AllowedOrigins([]string{"*"})
	aHeaders := handlers.AllowedHeaders([]string{"Origin", "Content-Type"})
	corsHandler := handlers.CORS(aHeaders, aOrigins, aMethods)(mux)
	loggedHandler := handlers.CombinedLoggingHandler(os.Stdout, corsHandler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      loggedHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	reapTicker := time.NewTicker(30 * time.Second)
	defer reapTicker.Stop()
	reapDone := make(chan struct{})
	go func() {
		for {
			select {
			case <-reapTicker.C:
				reg.ReapEmpty()
				reg.RefreshMetrics()
			case <-reapDone:
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("shutting down", zap.String("signal", sig.String()))

	close(reapDone)
	reg.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

func newLogger(level, environment string) *zap.Logger {
	var zcfg zap.Config
	if environment == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	var lvl zap.AtomicLevel
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		zcfg.Level = lvl
	}

	log, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

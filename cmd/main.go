package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "hydro_monitor/docs"
	"hydro_monitor/internal/config"
	"hydro_monitor/internal/handlers"
	"hydro_monitor/internal/logger"
	"hydro_monitor/internal/mqtt"
	"hydro_monitor/internal/repository"
	"hydro_monitor/internal/repository/db"
	"hydro_monitor/internal/server"
	"hydro_monitor/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Hydro Monitor API
// @version      1.0
// @description  Sensor ingestion service: normalizes heterogeneous payloads into canonical readings and serves latest and history.
// @BasePath     /
func main() {
	// init logger; the configured level is applied once config is loaded
	log := logger.Get(logger.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	// open DB
	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DBPath, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, cfg.IngestToken)
	apiHandler := handlers.NewHandler(services, log)
	if cfg.IngestToken == "" {
		log.Warnw("INGEST_TOKEN not set; /api/ingest accepts unauthenticated requests")
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Simulator.Enabled {
		log.Infow("simulator enabled", "interval", cfg.Simulator.Interval)
		go services.Simulator.Run(ctx, cfg.Simulator.Interval)
	}

	var sub *mqtt.Subscriber
	if cfg.MQTT.Enabled() {
		sub = mqtt.NewSubscriber(cfg.MQTT, services.Ingestion, log)
		go connectMQTT(ctx, sub, log)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, sub, log)
}

// connectMQTT blocks until the broker accepts the connection; paho keeps retrying meanwhile.
func connectMQTT(ctx context.Context, sub *mqtt.Subscriber, log *logger.Logger) {
	if err := sub.Connect(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, mqtt.ErrStopped) {
		log.Errorw("mqtt connect failed", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, sub *mqtt.Subscriber, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()
	if sub != nil {
		sub.Disconnect()
	}

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	_ = log.Sync()
}

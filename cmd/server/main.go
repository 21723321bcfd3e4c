package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journal-transporter/transporter/internal/api"
	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/db"
	"journal-transporter/transporter/internal/logging"
	"journal-transporter/transporter/internal/metrics"
	"journal-transporter/transporter/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Transporter starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	install, err := config.LoadInstall(cfg.InstallSettings)
	if err != nil {
		logging.Fatal("Failed to load install settings", "error", err.Error())
	}

	orm, sqlDB, err := db.Open(cfg)
	if err != nil {
		logging.Fatal("Failed to open database", "driver", cfg.DBDriver, "error", err.Error())
	}
	logging.Info("Database ready", "driver", cfg.DBDriver)

	cache, err := common.NewCache(cfg)
	if err != nil {
		logging.Fatal("Failed to initialize cache", "backend", cfg.CacheBackend, "error", err.Error())
	}
	defer cache.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB.DB, cfg.DBDriver),
	)
	metricsReg := metrics.NewMetricsRegistry(reg)

	deps := api.InitDependencies(cfg, install, orm, sqlDB, cache, metricsReg)
	router := routes.RegisterRoutes(deps, reg, time.Now())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server stopped", "error", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
	logging.Info("Server stopped")
}

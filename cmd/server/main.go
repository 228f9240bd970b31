package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MickeyTee/BankOfCanada/internal/api"
	"github.com/MickeyTee/BankOfCanada/internal/config"
	"github.com/MickeyTee/BankOfCanada/internal/recorder"
	"github.com/MickeyTee/BankOfCanada/internal/report"
	"github.com/MickeyTee/BankOfCanada/internal/scheduler"
	"github.com/MickeyTee/BankOfCanada/internal/valet"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] boc-comparison starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := valet.NewClient(cfg.Valet.BaseURL, cfg.Valet.Proxy,
		time.Duration(cfg.Valet.TimeoutSeconds)*time.Second)
	log.Printf("[INFO] data source: %s (%s)", fetcher.Name(), cfg.Valet.BaseURL)
	log.Printf("[INFO] series: %s vs %s", cfg.Series.A.Code, cfg.Series.B.Code)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init comparison service
	svc := report.NewService(fetcher,
		report.SeriesSpec{Code: cfg.Series.A.Code, Label: cfg.Series.A.Label},
		report.SeriesSpec{Code: cfg.Series.B.Code, Label: cfg.Series.B.Label})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional snapshot scheduler
	if cfg.Snapshot.Cron != "" {
		sched := scheduler.NewScheduler(ctx, svc, rec, cfg.Snapshot.WindowDays)
		if err := sched.Register(cfg.Snapshot.Cron); err != nil {
			log.Fatalf("[FATAL] register snapshot task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// HTTP server
	handler := api.NewHandler(svc, rec)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[INFO] listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] server shutdown: %v", err)
	}
	log.Println("[INFO] boc-comparison stopped")
}

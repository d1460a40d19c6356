package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/tallyboard/cliparse"
	"github.com/danielhkuo/tallyboard/ledger"
	"github.com/danielhkuo/tallyboard/metrics"
	"github.com/danielhkuo/tallyboard/router"
	"github.com/danielhkuo/tallyboard/rubric"
)

func main() {
	var err error

	// Load .env if present; real env vars still win
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load and validate the rubric
	rub, err := rubric.Load(cfg.RubricFile)
	if err != nil {
		slog.Error("rubric load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("rubric ready", "scale", rub.Scale, "criteria", len(rub.CriterionNames()))

	// Open the vote ledger
	led := ledger.New(cfg.DataFile, rub.CriterionNames())
	slog.Info("ledger ready", "path", led.Path())

	// Metrics registry
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// Create router
	mux := router.NewRouter(led, rub, cfg, m, reg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

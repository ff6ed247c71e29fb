package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/api"
	"github.com/dgallion1/convertwi/internal/config"
	"github.com/dgallion1/convertwi/internal/parser"
	"github.com/dgallion1/convertwi/internal/pipeline"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// maxprocs.Set only fails on an invalid GOMAXPROCS env, in which case the
	// runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Info(fmt.Sprintf(format, args...))
	}))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// The dictionary is loaded once and shared read-only by every request.
	entries, err := acronym.LoadFile(cfg.AcronymTable)
	if err != nil {
		log.Error("load acronym table", "path", cfg.AcronymTable, "error", err)
		os.Exit(1)
	}
	log.Info("loaded acronym table", "path", cfg.AcronymTable, "entries", len(entries))

	docx, err := parser.NewDocxConverter(cfg.DocxConverter, cfg.PandocPath)
	if err != nil {
		log.Error("invalid docx converter", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, docx, entries, pipeline.NewConvertStats(time.Hour), log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting convertwi", "port", cfg.Port, "docx_converter", cfg.DocxConverter)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	appcfg "github.com/park285/glinski-chess/internal/config"
	"github.com/park285/glinski-chess/internal/fanout"
	"github.com/park285/glinski-chess/internal/journal"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/internal/msgcat"
	"github.com/park285/glinski-chess/internal/obslog"
	"github.com/park285/glinski-chess/internal/render"
	"github.com/park285/glinski-chess/internal/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		logger.Fatal("msgcat_init_error", zap.Error(err))
	}

	var recorders journal.Multi
	if cfg.RedisURL != "" {
		rj, err := journal.NewRedisJournal(cfg.RedisURL, cfg.Journal)
		if err != nil {
			logger.Fatal("redis_journal_init_error", zap.Error(err))
		}
		defer func() { _ = rj.Close() }()
		recorders = append(recorders, rj)
	}
	if cfg.DatabaseURL != "" {
		pj, err := journal.NewPostgresJournal(cfg.DatabaseURL, cfg.Journal.Table)
		if err != nil {
			logger.Fatal("postgres_journal_init_error", zap.Error(err))
		}
		defer func() { _ = pj.Close() }()
		recorders = append(recorders, pj)
	}
	var recorder match.Recorder
	if len(recorders) > 0 {
		recorder = recorders
	}
	logger.Info("journal_ready", zap.Int("sinks", len(recorders)))

	hub := fanout.NewHub()
	store := match.NewStore(hub, recorder)
	srv := server.New(cfg, store, hub, render.NewRenderer(cat, render.DefaultOptions()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		logger.Error("server_error", zap.Error(err))
		os.Exit(1)
	}
}

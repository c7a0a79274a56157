package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"clubbot-engine/internal/bot"
	"clubbot-engine/internal/config"
	"clubbot-engine/internal/events"
	"clubbot-engine/internal/harvest"
	"clubbot-engine/internal/query"
	"clubbot-engine/internal/scheduler"
	"clubbot-engine/internal/secrets"
	"clubbot-engine/internal/store"
)

func main() {
	// Data dir: use env if provided, else local folder.
	dataDir := os.Getenv("CLUBBOT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	config.OverlayEnv(&cfg)

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}

	storePath := cfg.Store.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(dataDir, storePath)
	}
	st := store.New(storePath, store.DedupMode(cfg.Store.DedupMode))

	token, err := secrets.GetBotToken(cfg.Bot.KeyringAccount)
	if err != nil {
		log.Fatalf("bot token: %v", err)
	}

	var extractor query.ParamExtractor
	if cfg.Bot.ExtractorURL != "" {
		extractor = query.NewHTTPExtractor(cfg.Bot.ExtractorURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub()
	limiter := harvest.NewHostLimiter(cfg.Harvest.RequestsPerSec, cfg.Harvest.Burst)
	runner := harvest.NewRunner(limiter, st, hub)

	sched := scheduler.New(runner, cfg.Harvest.Tasks, cfg.Harvest.Cron)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("scheduler start failed: %v", err)
	}
	defer sched.Stop()

	b, err := bot.New(token, cfg.Bot.ChatID, st, extractor, cfg.Resources, cfg.ResumeLinks)
	if err != nil {
		log.Fatalf("bot init failed: %v", err)
	}

	b.Run(ctx, hub)
	log.Println("[engine] shutdown complete")
}

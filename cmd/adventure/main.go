// Package main provides the interactive adventure game. It wires together
// configuration, logging, content tables, the narrator, and the session loop.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/config"
	"github.com/cory-johannsen/dndgame/internal/game/combat"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/enemy"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
	"github.com/cory-johannsen/dndgame/internal/narrator"
	"github.com/cory-johannsen/dndgame/internal/observability"
	"github.com/cory-johannsen/dndgame/internal/server"
	"github.com/cory-johannsen/dndgame/internal/session"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "path to content tables directory (overrides config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Game.ContentDir = *contentDir
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting adventure",
		zap.String("config", *configPath),
		zap.Bool("narrator_enabled", cfg.Narrator.Enabled),
	)

	// Load content tables
	tables := rules.DefaultTables()
	if cfg.Game.ContentDir != "" {
		loadStart := time.Now()
		tables, err = rules.LoadTables(cfg.Game.ContentDir)
		if err != nil {
			logger.Fatal("loading content tables", zap.Error(err))
		}
		logger.Info("content tables loaded",
			zap.String("dir", cfg.Game.ContentDir),
			zap.Int("races", len(tables.Races())),
			zap.Int("weapons", len(tables.Weapons())),
			zap.Int("spells", len(tables.Spells())),
			zap.Int("enemies", len(tables.EnemyTemplates())),
			zap.Duration("elapsed", time.Since(loadStart)),
		)
	}

	// Build the narrator
	var storyteller combat.Narrator
	if cfg.Narrator.Enabled {
		svc, err := narrator.NewService(cfg.Narrator.APIKey, cfg.Narrator.Model, logger)
		if err != nil {
			logger.Fatal("initializing narrator", zap.Error(err))
		}
		storyteller = svc
	}

	// Build the session
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	game, err := session.New(session.Options{
		Tables:         tables,
		Roller:         roller,
		Factory:        enemy.NewFactory(tables),
		Narrator:       storyteller,
		NarrateTimeout: cfg.Narrator.Timeout,
		BaseHP:         cfg.Game.BaseHP,
		Logger:         logger,
		In:             os.Stdin,
		Out:            os.Stdout,
	})
	if err != nil {
		logger.Fatal("initializing session", zap.Error(err))
	}

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("session", game)

	logger.Info("game initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("game error", zap.Error(err))
	}
}

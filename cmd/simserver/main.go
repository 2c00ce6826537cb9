// Package main provides the headless simulation server: it builds a session
// on top of the in-memory scene and drives it with a fixed-step tick loop
// until interrupted.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/timberline-game/timberline/internal/config"
	"github.com/timberline-game/timberline/internal/game/player"
	"github.com/timberline-game/timberline/internal/game/rng"
	"github.com/timberline-game/timberline/internal/game/scene"
	"github.com/timberline-game/timberline/internal/game/session"
	"github.com/timberline-game/timberline/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	content, err := session.LoadContent(cfg.Content)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("species", len(content.Species)),
		zap.Int("nodes", len(content.Nodes)),
		zap.Int("tools", len(content.Tools)),
		zap.Int("recipes", len(content.Recipes)),
		zap.Int("upgrades", len(content.Upgrades)),
	)

	sess, err := session.New(cfg, content, scene.NewHeadless(), logger)
	if err != nil {
		logger.Fatal("building session", zap.Error(err))
	}
	sess.Populate()

	logger.Info("simulation server started",
		zap.Float64("half_extent", cfg.World.HalfExtent),
		zap.Int("tick_rate", cfg.World.TickRate),
		zap.Duration("startup", time.Since(start)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run(ctx, sess, cfg.World.TickRate, logger)

	logger.Info("simulation server stopped", zap.Duration("uptime", time.Since(start)))
}

// run drives the fixed-step loop until ctx is cancelled. With no real input
// device attached, the player idles while a bot wanders it around the world
// so the loop exercises movement and the creature AI.
func run(ctx context.Context, sess *session.Session, tickRate int, logger *zap.Logger) {
	step := time.Second / time.Duration(tickRate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	status := time.NewTicker(10 * time.Second)
	defer status.Stop()

	dt := step.Seconds()
	bot := rng.NewSeeded(time.Now().UnixNano())
	in := player.Input{Forward: true}

	for {
		select {
		case <-ctx.Done():
			return
		case <-status.C:
			logger.Info("status",
				zap.Int("creatures", sess.Creatures.Alive()),
				zap.Int("skill_points", sess.Economy.SkillPoints()),
				zap.Any("inventory", sess.Economy.Resources()),
			)
		case <-ticker.C:
			// Drift the bot's facing a little each tick.
			in.Yaw += (bot.Float64() - 0.5) * 0.1
			sess.Tick(dt, in)
		}
	}
}

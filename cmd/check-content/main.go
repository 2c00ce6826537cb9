// Package main provides the content linter: it loads every YAML content
// directory through the same loaders the server uses and fails on the first
// invalid definition.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/timberline-game/timberline/internal/config"
	"github.com/timberline-game/timberline/internal/game/session"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	content, err := session.LoadContent(cfg.Content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "content check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("content OK: %d species, %d nodes, %d tools, %d recipes, %d upgrades\n",
		len(content.Species), len(content.Nodes), len(content.Tools),
		len(content.Recipes), len(content.Upgrades))
}

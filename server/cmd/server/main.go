package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberworks/brawlcore/server/core"
	"github.com/emberworks/brawlcore/shared/leveldata"
	"github.com/emberworks/brawlcore/shared/protocol"
)

func main() {
	cfg, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := flag.Uint("port", cfg.Port, "Server port")
	tickRate := flag.Int("tickrate", cfg.TickRate, "Snapshot sync rate (per second)")
	arenaPath := flag.String("arena", "", "TMX arena file (empty = built-in bounded arena)")
	version := flag.String("version", cfg.Version, "Required client version (empty = accept any)")
	flag.Parse()

	cfg.Port = *port
	cfg.TickRate = *tickRate
	cfg.Version = *version

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	arena := leveldata.DefaultArena(960, 640)
	if *arenaPath != "" {
		arena, err = leveldata.LoadArena(os.DirFS("."), *arenaPath)
		if err != nil {
			log.Fatalf("Failed to load arena %s: %v", *arenaPath, err)
		}
	}

	core.StartMetricsServer(cfg.MetricsAddr)

	server := core.NewServer(cfg, arena)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting %q on port %d (sync rate: %d/s, version: %s)",
		cfg.Name, cfg.Port, cfg.TickRate, cfg.Version)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

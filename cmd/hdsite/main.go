package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hospitaldigital/hdsite"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file (optional)")
	staticDir := flag.String("static", "public", "directory for static assets and uploads")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("hdsite %s\n", version)
		return
	}

	cfg, err := hdsite.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdsite: %v\n", err)
		os.Exit(1)
	}

	log := hdsite.NewLogger(cfg)
	app := hdsite.New(cfg,
		hdsite.WithLogger(log),
		hdsite.WithStaticDir(*staticDir),
	)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

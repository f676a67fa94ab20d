package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/config"
	traincoachmcp "github.com/claude/traincoach/internal/mcp"
	"github.com/claude/traincoach/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local DB mode)")
	serverURL := flag.String("server", "", "TrainCoach server URL (remote mode, e.g. https://traincoach.tail1234.ts.net)")
	userID := flag.Int("user", 1, "user ID to serve data for (local DB mode)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("traincoach-mcp", Version)
		return
	}

	// Logs go to stderr — stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath == "" && *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: traincoach-mcp [-server URL | -config config.yaml]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ds traincoachmcp.DataSource
	if *serverURL != "" {
		ds = traincoachmcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "url", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ds = coach.NewService(db, log)
		log.Info("local DB mode", "user_id", *userID)
	}

	mcpServer := traincoachmcp.New(ds, Version, log)

	stdio := server.NewStdioServer(mcpServer)
	stdio.SetContextFunc(func(ctx context.Context) context.Context {
		return traincoachmcp.WithUserID(ctx, *userID)
	})

	log.Info("MCP server listening on stdio")
	if err := stdio.Listen(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/config"
	"github.com/claude/traincoach/internal/importer"
	"github.com/claude/traincoach/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (direct DB mode)")
	serverURL := flag.String("server", "", "TrainCoach server URL (server mode, e.g. https://traincoach.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for the ingest endpoints (server mode)")
	exportPath := flag.String("path", "", "path to directory of JSON export files (required)")
	userID := flag.Int("user", 1, "user ID to import records for (direct DB mode)")
	dryRun := flag.Bool("dry-run", false, "report counts without loading anything")
	noState := flag.Bool("no-state", false, "ignore the state database and re-read every file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("traincoach-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: traincoach-import -path /path/to/exports [-server URL -api-key KEY | -config config.yaml] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*exportPath)
	if err != nil || !info.IsDir() {
		log.Error("export path does not exist or is not a directory", "path", *exportPath)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be loaded")
	}

	// Pick the sink: a running server, or the database directly.
	var sink importer.Sink
	if *serverURL != "" {
		sink = importer.NewClient(*serverURL, *apiKey)
		log.Info("server mode", "url", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("direct DB mode", "user_id", *userID)

		sink = importer.NewServiceSink(coach.NewService(db, log), *userID)
	}

	// Open state database unless disabled
	var state *importer.StateDB
	if !*noState {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}

		state, err = importer.OpenStateDB(filepath.Join(homeDir, ".traincoach-import"))
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	imp := importer.New(sink, state, log, *dryRun)
	stats, err := imp.Run(ctx, *exportPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("import complete")
}

func printStats(stats *importer.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files processed:   %d\n", stats.FilesProcessed)
	fmt.Printf("  Files skipped:     %d (already imported or empty)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:     %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Activities:        %d inserted, %d duplicates\n", stats.ActivitiesInserted, stats.ActivitiesDuplicated)
	fmt.Printf("  Sessions:          %d inserted, %d duplicates\n", stats.SessionsInserted, stats.SessionsDuplicated)
	fmt.Printf("  Goals recalculated: %d\n", stats.GoalsRecalculated)
	fmt.Println()
}

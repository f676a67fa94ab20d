// Package importer bulk-loads activity-export files into TrainCoach, either
// directly into the database or through the ingest API.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/models"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ActivitiesInserted   int
	ActivitiesDuplicated int
	SessionsInserted     int
	SessionsDuplicated   int

	GoalsRecalculated int
}

// Sink receives parsed export records. Client sends them to a running server;
// ServiceSink writes them straight to the database.
type Sink interface {
	IngestActivities(ctx context.Context, activities []models.ExportActivity) (inserted, duplicates int, err error)
	IngestSessions(ctx context.Context, sessions []models.ExportSession) (inserted, duplicates int, err error)
	RecalculateGoals(ctx context.Context) (int, error)
}

// ServiceSink loads records through coach.Service, for direct DB mode where
// the importer connects to PostgreSQL itself.
type ServiceSink struct {
	svc    *coach.Service
	userID int
}

var _ Sink = (*ServiceSink)(nil)

// NewServiceSink creates a ServiceSink writing records for the given user.
func NewServiceSink(svc *coach.Service, userID int) *ServiceSink {
	return &ServiceSink{svc: svc, userID: userID}
}

func (s *ServiceSink) IngestActivities(ctx context.Context, activities []models.ExportActivity) (int, int, error) {
	var inserted, duplicates int
	for _, a := range activities {
		ok, _, err := s.svc.IngestActivity(ctx, a.Record(s.userID))
		if err != nil {
			return inserted, duplicates, err
		}
		if ok {
			inserted++
		} else {
			duplicates++
		}
	}
	return inserted, duplicates, nil
}

func (s *ServiceSink) IngestSessions(ctx context.Context, sessions []models.ExportSession) (int, int, error) {
	var inserted, duplicates int
	for _, sess := range sessions {
		ok, err := s.svc.IngestSession(ctx, sess.Record(s.userID))
		if err != nil {
			return inserted, duplicates, err
		}
		if ok {
			inserted++
		} else {
			duplicates++
		}
	}
	return inserted, duplicates, nil
}

func (s *ServiceSink) RecalculateGoals(ctx context.Context) (int, error) {
	results, err := s.svc.RecalculateAllGoals(ctx, s.userID)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Importer walks a directory of JSON export files and loads them through a Sink.
type Importer struct {
	sink   Sink
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates an Importer. state may be nil, in which case every file is
// loaded unconditionally (the ingest path still deduplicates by record id).
func New(sink Sink, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{sink: sink, state: state, log: log, dryRun: dryRun}
}

// Run imports every .json file under dir, recursively, then triggers a full
// goal recalculation if anything new was loaded. Unreadable or malformed
// files are logged and counted, never fatal.
func (imp *Importer) Run(ctx context.Context, dir string) (*Stats, error) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}
		imp.importFile(ctx, dir, path)
		return nil
	})
	if err != nil {
		return &imp.stats, fmt.Errorf("walking %s: %w", dir, err)
	}

	if !imp.dryRun && imp.stats.ActivitiesInserted+imp.stats.SessionsInserted > 0 {
		recalculated, err := imp.sink.RecalculateGoals(ctx)
		if err != nil {
			return &imp.stats, fmt.Errorf("recalculating goals: %w", err)
		}
		imp.stats.GoalsRecalculated = recalculated
	}

	return &imp.stats, nil
}

// importFile loads a single export file, consulting the state DB first.
func (imp *Importer) importFile(ctx context.Context, root, path string) {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			return
		}

		imported, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			imp.log.Warn("state check failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			return
		}
		if imported {
			imp.stats.FilesSkipped++
			return
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return
	}

	exp, err := parseExport(data)
	if err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return
	}

	if len(exp.Activities) == 0 && len(exp.Sessions) == 0 {
		imp.stats.FilesSkipped++
		// Mark empty files so we don't re-read them next run.
		imp.markImported(relPath, info.Size(), hash)
		return
	}

	if imp.dryRun {
		imp.stats.FilesProcessed++
		imp.stats.ActivitiesInserted += len(exp.Activities)
		imp.stats.SessionsInserted += len(exp.Sessions)
		imp.log.Info("dry-run: would load",
			"file", relPath,
			"activities", len(exp.Activities),
			"sessions", len(exp.Sessions),
		)
		return
	}

	if len(exp.Activities) > 0 {
		inserted, duplicates, err := imp.sink.IngestActivities(ctx, exp.Activities)
		imp.stats.ActivitiesInserted += inserted
		imp.stats.ActivitiesDuplicated += duplicates
		if err != nil {
			imp.log.Warn("activity load failed", "file", relPath, "error", err)
			imp.stats.FilesErrored++
			return
		}
	}

	if len(exp.Sessions) > 0 {
		inserted, duplicates, err := imp.sink.IngestSessions(ctx, exp.Sessions)
		imp.stats.SessionsInserted += inserted
		imp.stats.SessionsDuplicated += duplicates
		if err != nil {
			imp.log.Warn("session load failed", "file", relPath, "error", err)
			imp.stats.FilesErrored++
			return
		}
	}

	imp.stats.FilesProcessed++
	imp.markImported(relPath, info.Size(), hash)

	imp.log.Info("loaded export file",
		"file", relPath,
		"activities", len(exp.Activities),
		"sessions", len(exp.Sessions),
	)
}

func (imp *Importer) markImported(relPath string, size int64, hash string) {
	if imp.state == nil {
		return
	}
	if err := imp.state.MarkImported(relPath, size, hash); err != nil {
		imp.log.Warn("failed to mark imported", "file", relPath, "error", err)
	}
}

// parseExport accepts both the wrapped form {"data": {...}} and a bare
// {"activities": [...], "sessions": [...]} object.
func parseExport(data []byte) (models.ExportData, error) {
	var payload models.ExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.ExportData{}, err
	}
	if len(payload.Data.Activities) > 0 || len(payload.Data.Sessions) > 0 {
		return payload.Data, nil
	}

	var exp models.ExportData
	if err := json.Unmarshal(data, &exp); err != nil {
		return models.ExportData{}, err
	}
	return exp, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/muhammadolammi/skillmatch/internal/config"
	"github.com/muhammadolammi/skillmatch/internal/database"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app bundles what every subcommand needs.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *sql.DB
	queries   *database.Queries
	extractor *skills.Extractor
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	if cfg.DBURL != "" {
		db, err := sql.Open("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("error opening db: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error connecting to db: %w", err)
		}
		a.db = db
		a.queries = database.New(db)
	}

	var lister skillLister
	if a.queries != nil {
		lister = a.queries
	}
	vocab, source, err := loadVocabulary(ctx, cfg, lister)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Debug("vocabulary loaded", zap.String("source", source), zap.Int("skills", len(vocab)))
	a.extractor = skills.NewExtractor(vocab)
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	_ = a.logger.Sync()
}

func newLogger(level string, debug bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if debug {
		lvl = zapcore.DebugLevel
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

type skillLister interface {
	ListSkillNames(ctx context.Context) ([]string, error)
}

// loadVocabulary picks the vocabulary source: SKILLS_FILE, then the skills
// table, then the built-in list.
func loadVocabulary(ctx context.Context, cfg *config.Config, lister skillLister) (skills.Vocabulary, string, error) {
	if cfg.SkillsFile != "" {
		v, err := skills.LoadFile(cfg.SkillsFile)
		if err != nil {
			return nil, "", err
		}
		return v, "file", nil
	}

	if lister != nil {
		names, err := lister.ListSkillNames(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("error listing skills: %w", err)
		}
		if len(names) > 0 {
			v, err := skills.FromNames(names)
			if err != nil {
				return nil, "", fmt.Errorf("invalid skills table: %w", err)
			}
			return v, "database", nil
		}
	}

	return skills.Default(), "default", nil
}

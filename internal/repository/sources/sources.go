// Package sources builds the PropertySource selected by configuration.
package sources

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/repository"
	"github.com/mamadbah2/realty/internal/repository/feed"
	"github.com/mamadbah2/realty/internal/repository/file"
	"github.com/mamadbah2/realty/internal/repository/mock"
	"github.com/mamadbah2/realty/internal/repository/mongodb"
	"github.com/mamadbah2/realty/internal/repository/sheets"
)

// CloseFunc releases resources held by a source.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open returns the configured source. The caller must invoke the CloseFunc on shutdown.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.PropertySource, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Source.Kind {
	case config.SourceMock, "":
		return mock.NewSource(), noopClose, nil

	case config.SourceFile:
		return file.NewSource(cfg.Source.File), noopClose, nil

	case config.SourceMongoDB:
		repo, err := mongodb.NewRepository(ctx, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.SourceSheets:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return nil, nil, err
		}
		return sheets.NewPropertySource(repo, cfg.Sheets.Range, logger.Named("repo.sheets")), noopClose, nil

	case config.SourceFeed:
		return feed.NewClient(cfg.Feed, logger.Named("repo.feed")), noopClose, nil
	}

	return nil, nil, fmt.Errorf("unknown property source %q", cfg.Source.Kind)
}

package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/config"
	"catalog-manager/core/metrics"
	"catalog-manager/core/storage"
	"catalog-manager/feature/variants"
	"catalog-manager/feature/variants/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// prepareStore builds the catalog store and migrates or verifies its schema.
func prepareStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (*store.Store, error) {
	st := store.New(db, cfg.Variants.StoreTimeout())
	if cfg.Variants.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
		return st, nil
	}
	if err := st.CheckSchema(ctx); err != nil {
		return nil, fmt.Errorf("%w (set VARIANTS_AUTO_MIGRATE=true to create it)", err)
	}
	return st, nil
}

// prepareArchive connects to object storage for commit reports.
// Archiving is optional: failures are logged and yield a nil archive.
func prepareArchive(ctx context.Context, cfg *config.Config, l *zap.Logger) *variants.Archive {
	if !cfg.Variants.ArchiveReports {
		return nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		l.Warn("Report archive disabled: storage client failed", zap.Error(err))
		return nil
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		l.Warn("Report archive disabled: bucket unavailable", zap.Error(err))
		return nil
	}
	return variants.NewArchive(client, cfg.Storage.Bucket, cfg.Variants.ReportPrefix)
}

// newVariantsService wires the variants service with its collaborators.
func newVariantsService(ctx context.Context, cfg *config.Config, db *gorm.DB, m *metrics.Metrics, l *zap.Logger) (*variants.Service, error) {
	st, err := prepareStore(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	archive := prepareArchive(ctx, cfg, l)
	return variants.NewService(st, archive, m, l, cfg.Variants), nil
}

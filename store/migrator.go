package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName holds the full schema used to initialize fresh
// installations.
const LatestSchemaFileName = "LATEST.sql"

// Migrate bootstraps the database schema on first run. The schema file is
// per-driver: store/migration/{driver}/LATEST.sql.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}
	if initialized {
		return nil
	}

	path := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read schema file %q", path)
	}

	if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}

	slog.Info("database initialized", "driver", s.profile.Driver)
	return nil
}

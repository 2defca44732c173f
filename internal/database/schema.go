package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"

	"gorm.io/gorm"
)

// DB_SCHEMA_MODE values. hybrid runs the SQL migrations and, outside
// production, AutoMigrate on top so new model fields show up without a script.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// schemaPlan is what ApplySchema will do for one configuration.
type schemaPlan struct {
	mode    string
	runSQL  bool
	runAuto bool
}

// SchemaStatus is reported by cmd/migrate status.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

func planSchema(cfg *config.Config) (schemaPlan, error) {
	p := schemaPlan{mode: strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))}
	if p.mode == "" {
		p.mode = SchemaModeHybrid
	}

	// The embedded scripts are PostgreSQL only.
	if cfg.DBDriver == DriverSQLite {
		switch p.mode {
		case SchemaModeSQL:
			return p, fmt.Errorf("DB_SCHEMA_MODE=sql requires DB_DRIVER=postgres")
		case SchemaModeHybrid, SchemaModeAuto:
			p.runAuto = true
			return p, nil
		}
		return p, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", p.mode)
	}

	live := slices.Contains([]string{"production", "prod", "staging", "stage"}, strings.ToLower(strings.TrimSpace(cfg.Env)))
	switch p.mode {
	case SchemaModeSQL:
		p.runSQL = true
	case SchemaModeHybrid:
		p.runSQL, p.runAuto = true, !live
	case SchemaModeAuto:
		if live && !cfg.DBAutoMigrateAllowDestructive {
			return p, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		p.runAuto = true
	default:
		return p, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", p.mode)
	}
	return p, nil
}

// ApplySchema brings the schema up to date according to DB_SCHEMA_MODE.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.runSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if !plan.runAuto {
		return nil
	}

	if plan.mode == SchemaModeAuto && cfg.DBAutoMigrateAllowDestructive {
		middleware.Logger.Warn("auto-migrating with DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true; review schema diffs before deploying")
	}
	middleware.Logger.Info("auto-migrating models",
		slog.String("mode", plan.mode), slog.String("env", cfg.Env), slog.Int("models", len(PersistentModels())))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GetSchemaStatus reports the plan and, when SQL migrations apply, which
// embedded versions have not run yet.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.runSQL,
		WillRunAutoMigrate: plan.runAuto,
	}
	if !plan.runSQL {
		return status, nil
	}

	status.AppliedVersions, err = NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range migrations {
		if !slices.Contains(status.AppliedVersions, m.Version) {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}
	return status, nil
}

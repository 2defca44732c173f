// Package bootstrap wires the database and Redis connections shared by the
// server and the command-line tools.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/database"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs migrations per DB_SCHEMA_MODE after connecting.
	ApplySchema bool
	// DemoApplicants seeds this many applicants into an empty database.
	DemoApplicants int
}

// InitRuntime connects to DB and Redis and optionally prepares the schema and demo data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return nil, nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := cache.InitRedis(ctx, cfg.RedisURL); err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without cache", slog.String("error", err.Error()))
	}
	r := cache.GetClient()

	if opts.DemoApplicants > 0 {
		if err := seedDemo(ctx, db, opts.DemoApplicants); err != nil {
			return nil, nil, err
		}
	}

	if err := ensureDevApplicant(ctx, cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development applicant: %w", err)
	}

	return db, r, nil
}

// seedDemo fills an empty database with applicants.
func seedDemo(ctx context.Context, db *gorm.DB, n int) error {
	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		return nil
	}
	if _, err := seed.Seed(ctx, db, seed.Options{NumApplicants: n, Complete: true}); err != nil {
		return fmt.Errorf("failed to seed demo applicants: %w", err)
	}
	return nil
}

// ensureDevApplicant creates the development login, or resets its password
// when it already exists.
func ensureDevApplicant(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapApplicant {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevApplicantEmail))
	if email == "" {
		email = "applicant@example.com"
	}
	if cfg.DevApplicantPassword == "" {
		return errors.New("DEV_APPLICANT_PASSWORD must be set when DEV_BOOTSTRAP_APPLICANT is enabled")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.DevApplicantPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash applicant password: %w", err)
	}

	var user models.User
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			user = models.User{Email: email, Password: string(hashed)}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := models.Profile{FirstName: "Demo", LastName: "Applicant", Category: "GEN"}
			profile.SetOwner(user.ID, email)
			return tx.Create(&profile).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&user).Update("password", string(hashed)).Error
		}
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, user.ID)
	middleware.Logger.Info("development applicant ensured", slog.String("email", email))
	return nil
}

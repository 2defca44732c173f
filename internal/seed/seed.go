// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/database"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumApplicants int
	// Complete fills every form page, not just the signup profile.
	Complete    bool
	ShouldClean bool
	Seed        int64
	SkipBcrypt  bool
	DryRun      bool
}

// demoApplicants always exist after a seed so the portal can be tried out.
var demoApplicants = []struct{ first, last, email string }{
	{"Asha", "Rao", "asha.rao@example.edu"},
	{"Vikram", "Menon", "vikram.menon@example.edu"},
}

// Seed populates the database with applicants and returns them.
func Seed(ctx context.Context, db *gorm.DB, opts Options) ([]*models.User, error) {
	log.Printf("🌱 Seeding %d applicants (complete=%t)...", opts.NumApplicants, opts.Complete)

	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	f, err := NewFactory(db, FactoryOptions{Seed: opts.Seed, SkipBcrypt: opts.SkipBcrypt, DryRun: opts.DryRun})
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, opts.NumApplicants)
	for i := 0; i < opts.NumApplicants; i++ {
		var override []func(*models.User, *models.Profile)
		if i < len(demoApplicants) {
			demo := demoApplicants[i]
			override = append(override, func(u *models.User, p *models.Profile) {
				u.Email = demo.email
				p.FirstName, p.LastName = demo.first, demo.last
			})
			if exists, err := emailTaken(db, demo.email, opts.DryRun); err != nil {
				return nil, err
			} else if exists {
				continue
			}
		}

		user, err := f.CreateApplicant(override...)
		if err != nil {
			return nil, fmt.Errorf("create applicant: %w", err)
		}
		if opts.Complete {
			if err := f.FillApplication(ctx, user); err != nil {
				return nil, fmt.Errorf("fill application for %s: %w", user.Email, err)
			}
		}
		users = append(users, user)

		if (i+1)%50 == 0 {
			log.Printf("Created %d applicants...", i+1)
		}
	}

	log.Printf("✓ %d applicants created (password %q)", len(users), DefaultPassword)
	return users, nil
}

func emailTaken(db *gorm.DB, email string, dryRun bool) (bool, error) {
	if dryRun {
		return false, nil
	}
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// clearData deletes every row, children first, on any dialect.
func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	tables := database.PersistentModels()
	return db.Transaction(func(tx *gorm.DB) error {
		for i := len(tables) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(tables[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package repository

import (
	"context"
	"fmt"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"

	"gorm.io/gorm"
)

// SummaryRepository performs the per-table lookups behind the print view.
type SummaryRepository interface {
	// FindOwned loads every row of dest's element table owned by userID, in insertion order.
	FindOwned(ctx context.Context, userID uint, dest any) error
	// FindEducation loads the education rows with their additional qualifications.
	FindEducation(ctx context.Context, userID uint) ([]models.EducationalDetails, error)
}

type summaryRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewSummaryRepository returns a new SummaryRepository implementation.
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db, metrics: observability.NewDatabaseMetrics()}
}

func (r *summaryRepository) FindOwned(ctx context.Context, userID uint, dest any) error {
	table := fmt.Sprintf("%T", dest)
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(dest); err == nil {
		table = stmt.Schema.Table
	}
	defer r.metrics.TrackQuery("find_owned", table)()
	ctx, span := observability.TraceRepositoryMethod(ctx, "find_owned", table)
	defer span.End()

	if err := readDB(r.db).WithContext(ctx).Scopes(ownedBy(userID)).Order("id ASC").Find(dest).Error; err != nil {
		return models.NewInternalError(fmt.Errorf("load %s: %w", table, err))
	}
	return nil
}

func (r *summaryRepository) FindEducation(ctx context.Context, userID uint) ([]models.EducationalDetails, error) {
	defer r.metrics.TrackQuery("find_education", "educationaldetails")()

	var rows []models.EducationalDetails
	err := readDB(r.db).WithContext(ctx).
		Scopes(ownedBy(userID)).
		Preload("Additional", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("load education: %w", err))
	}
	return rows, nil
}

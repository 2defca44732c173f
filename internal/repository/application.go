package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"

	"gorm.io/gorm"
)

// ApplicationRepository persists the form pages. Every call runs in one
// transaction and replaces the applicant's rows in the tables it touches.
type ApplicationRepository interface {
	// PurgePage deletes the rows a form page owns before it is rendered again.
	PurgePage(ctx context.Context, page int, userID uint) error
	SavePersonal(ctx context.Context, owner models.Owner, app *models.ApplicationDetails, personal *models.PersonalDetails) error
	SaveEducation(ctx context.Context, owner models.Owner, edu *models.EducationalDetails) error
	SaveExperience(ctx context.Context, owner models.Owner, rec *models.ExperienceRecord) error
	SavePublications(ctx context.Context, owner models.Owner, rec *models.PublicationRecord) error
	SaveService(ctx context.Context, owner models.Owner, rec *models.ServiceRecord) error
	SaveTheses(ctx context.Context, owner models.Owner, rec *models.ThesisRecord) error
	SaveStatements(ctx context.Context, owner models.Owner, st *models.Statements) error
	SaveDocuments(ctx context.Context, owner models.Owner, docs *models.Documents, referees []models.Referee) error
}

// pageTables lists the family tables purged when a page is revisited.
// Page 2 is handled separately because of the additional-details child rows.
var pageTables = map[int][]any{
	3: {
		&models.PresentEmployment{}, &models.EmploymentHistory{}, &models.TeachingExp{},
		&models.ResearchExp{}, &models.IndustrialExp{}, &models.AosAor{},
	},
	4: {
		&models.Publications{}, &models.TopPublication{}, &models.Patent{},
		&models.Book{}, &models.BookChapter{}, &models.GoogleLink{},
	},
	5: {
		&models.Membership{}, &models.Training{}, &models.Award{},
		&models.SponsoredProject{}, &models.ConsultancyProject{},
	},
	6: {
		&models.PhdThesis{}, &models.PgThesis{}, &models.UgThesis{},
	},
}

// PurgesOnRender reports whether visiting page deletes stored rows.
func PurgesOnRender(page int) bool {
	_, ok := pageTables[page]
	return ok || page == 2
}

type applicationRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{
		db:      db,
		log:     observability.NewRepoLogger("application"),
		metrics: observability.NewDatabaseMetrics(),
	}
}

// write runs fn in a transaction and drops the cached summary once it commits.
func (r *applicationRepository) write(ctx context.Context, op string, userID uint, fn func(tx *gorm.DB) error) error {
	defer r.metrics.TrackQuery(op, "application")()
	ctx, span := observability.TraceRepositoryMethod(ctx, op, "application")
	defer span.End()

	if err := r.db.WithContext(ctx).Transaction(fn); err != nil {
		observability.RecordErrorInContext(ctx, err)
		r.log.Failed(ctx, op, err)
		return models.NewInternalError(fmt.Errorf("%s: %w", op, err))
	}
	cache.InvalidateSummary(ctx, userID)
	r.log.Wrote(ctx, op, slog.Uint64("user_id", uint64(userID)))
	return nil
}

func deleteOwned(tx *gorm.DB, userID uint, model any) error {
	return tx.Scopes(ownedBy(userID)).Delete(model).Error
}

// replaceRows swaps the applicant's rows in T's table for rows.
func replaceRows[T any, PT interface {
	*T
	models.Owned
}](tx *gorm.DB, owner models.Owner, rows []T) error {
	if err := deleteOwned(tx, owner.UserID, PT(new(T))); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		PT(&rows[i]).SetOwner(owner.UserID, owner.Email)
	}
	return tx.Create(&rows).Error
}

func purgeEducation(tx *gorm.DB, userID uint) error {
	var ids []uint
	if err := tx.Model(&models.EducationalDetails{}).Scopes(ownedBy(userID)).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		if err := tx.Where("educationaldetails_id IN ?", ids).Delete(&models.EduAdditionalDetails{}).Error; err != nil {
			return err
		}
	}
	return deleteOwned(tx, userID, &models.EducationalDetails{})
}

func (r *applicationRepository) PurgePage(ctx context.Context, page int, userID uint) error {
	if !PurgesOnRender(page) {
		return nil
	}
	op := fmt.Sprintf("purge_page_%d", page)
	err := r.write(ctx, op, userID, func(tx *gorm.DB) error {
		if page == 2 {
			return purgeEducation(tx, userID)
		}
		for _, model := range pageTables[page] {
			if err := deleteOwned(tx, userID, model); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		r.log.Purged(ctx, page, userID)
	}
	return err
}

func (r *applicationRepository) SavePersonal(ctx context.Context, owner models.Owner, app *models.ApplicationDetails, personal *models.PersonalDetails) error {
	return r.write(ctx, "save_personal", owner.UserID, func(tx *gorm.DB) error {
		if err := replaceRows(tx, owner, []models.ApplicationDetails{*app}); err != nil {
			return err
		}
		return replaceRows(tx, owner, []models.PersonalDetails{*personal})
	})
}

func (r *applicationRepository) SaveEducation(ctx context.Context, owner models.Owner, edu *models.EducationalDetails) error {
	return r.write(ctx, "save_education", owner.UserID, func(tx *gorm.DB) error {
		if err := purgeEducation(tx, owner.UserID); err != nil {
			return err
		}
		edu.ID = 0
		edu.SetOwner(owner.UserID, owner.Email)
		for i := range edu.Additional {
			edu.Additional[i].ID = 0
		}
		return tx.Create(edu).Error
	})
}

func (r *applicationRepository) SaveExperience(ctx context.Context, owner models.Owner, rec *models.ExperienceRecord) error {
	return r.write(ctx, "save_experience", owner.UserID, func(tx *gorm.DB) error {
		if err := replaceRows(tx, owner, rec.Present); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.History); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Teaching); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Research); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Industrial); err != nil {
			return err
		}
		return replaceRows(tx, owner, rec.Areas)
	})
}

func (r *applicationRepository) SavePublications(ctx context.Context, owner models.Owner, rec *models.PublicationRecord) error {
	return r.write(ctx, "save_publications", owner.UserID, func(tx *gorm.DB) error {
		if err := replaceRows(tx, owner, rec.Summary); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Top); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Patents); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Books); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Chapters); err != nil {
			return err
		}
		return replaceRows(tx, owner, rec.Links)
	})
}

func (r *applicationRepository) SaveService(ctx context.Context, owner models.Owner, rec *models.ServiceRecord) error {
	return r.write(ctx, "save_service", owner.UserID, func(tx *gorm.DB) error {
		if err := replaceRows(tx, owner, rec.Memberships); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Trainings); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Awards); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Sponsored); err != nil {
			return err
		}
		return replaceRows(tx, owner, rec.Consultancy)
	})
}

func (r *applicationRepository) SaveTheses(ctx context.Context, owner models.Owner, rec *models.ThesisRecord) error {
	return r.write(ctx, "save_theses", owner.UserID, func(tx *gorm.DB) error {
		if err := replaceRows(tx, owner, rec.Phd); err != nil {
			return err
		}
		if err := replaceRows(tx, owner, rec.Pg); err != nil {
			return err
		}
		return replaceRows(tx, owner, rec.Ug)
	})
}

func (r *applicationRepository) SaveStatements(ctx context.Context, owner models.Owner, st *models.Statements) error {
	return r.write(ctx, "save_statements", owner.UserID, func(tx *gorm.DB) error {
		return replaceRows(tx, owner, []models.Statements{*st})
	})
}

func (r *applicationRepository) SaveDocuments(ctx context.Context, owner models.Owner, docs *models.Documents, referees []models.Referee) error {
	return r.write(ctx, "save_documents", owner.UserID, func(tx *gorm.DB) error {
		if err := replaceRows(tx, owner, []models.Documents{*docs}); err != nil {
			return err
		}
		return replaceRows(tx, owner, referees)
	})
}

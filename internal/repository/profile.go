package repository

import (
	"context"
	"errors"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository reads applicant profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	// GetWithDocuments joins the profile with the applicant's page 8 row, if any.
	GetWithDocuments(ctx context.Context, userID uint) (*models.ProfileDocuments, error)
	// UploadNames lists every stored file name the applicant's page 1 and page 8 rows reference.
	UploadNames(ctx context.Context, userID uint) ([]string, error)
	List(ctx context.Context, limit, offset int) ([]models.Profile, error)
}

type profileRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db, metrics: observability.NewDatabaseMetrics()}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	defer r.metrics.TrackQuery("get_by_user", "profile")()

	var profile models.Profile
	if err := readDB(r.db).WithContext(ctx).Scopes(ownedBy(userID)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetWithDocuments(ctx context.Context, userID uint) (*models.ProfileDocuments, error) {
	defer r.metrics.TrackQuery("get_with_documents", "profile")()

	var rows []models.ProfileDocuments
	err := readDB(r.db).WithContext(ctx).
		Table("profile").
		Select(`profile.first_name, profile.last_name,
			page_8.phd_path, page_8.pg_path, page_8.ug_path, page_8.tw_path, page_8.te_path,
			page_8.pay_path, page_8.noc_path, page_8.post_path, page_8.misc_path,
			page_8.sign_path, page_8.research_path`).
		Joins("LEFT JOIN page_8 ON page_8.user_id = profile.user_id").
		Where("profile.user_id = ?", userID).
		Order("page_8.id DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(rows) == 0 {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	return &rows[0], nil
}

func (r *profileRepository) UploadNames(ctx context.Context, userID uint) ([]string, error) {
	defer r.metrics.TrackQuery("upload_names", "profile")()

	var personal []models.PersonalDetails
	if err := readDB(r.db).WithContext(ctx).Scopes(ownedBy(userID)).
		Select("image_path", "idproof_image").Find(&personal).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []models.Documents
	if err := readDB(r.db).WithContext(ctx).Scopes(ownedBy(userID)).Find(&docs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var names []string
	add := func(paths ...*string) {
		for _, p := range paths {
			if p != nil && *p != "" {
				names = append(names, *p)
			}
		}
	}
	for _, p := range personal {
		add(p.ImagePath, p.IdproofImage)
	}
	for _, d := range docs {
		add(d.PhdPath, d.PgPath, d.UgPath, d.TwPath, d.TePath, d.PayPath,
			d.NocPath, d.PostPath, d.MiscPath, d.SignPath, d.ResearchPath)
	}
	return names, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	defer r.metrics.TrackQuery("list", "profile")()

	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var profiles []models.Profile
	if err := readDB(r.db).WithContext(ctx).Order("user_id ASC").Limit(limit).Offset(offset).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

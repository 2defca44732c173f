package service

import (
	"context"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// ApplicantService backs the admin tooling.
type ApplicantService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	summary  *SummaryService
}

// Applicant is one row of the admin listing.
type Applicant struct {
	UserID    uint   `json:"user_id" yaml:"user_id"`
	Email     string `json:"email" yaml:"email"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Category  string `json:"category" yaml:"category"`
}

func NewApplicantService(users repository.UserRepository, profiles repository.ProfileRepository, summary *SummaryService) *ApplicantService {
	return &ApplicantService{users: users, profiles: profiles, summary: summary}
}

func (s *ApplicantService) List(ctx context.Context, limit, offset int) ([]Applicant, error) {
	profiles, err := s.profiles.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Applicant, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Applicant{
			UserID:    p.UserID,
			Email:     p.Email,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Category:  p.Category,
		})
	}
	return out, nil
}

// Export returns the full application of the account registered under email.
func (s *ApplicantService) Export(ctx context.Context, email string) (*models.ApplicationSummary, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return s.summary.Build(ctx, user.ID)
}

// SetPassword overwrites an applicant's password.
func (s *ApplicantService) SetPassword(ctx context.Context, email, password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

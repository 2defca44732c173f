// Package service holds the business rules behind the HTTP handlers.
package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/featureflags"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	captchaLength   = 6
	captchaAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	ErrPasswordMismatch   = models.NewValidationError("Passwords do not match")
	ErrCaptchaMismatch    = models.NewValidationError("Captcha does not match")
	ErrInvalidCredentials = models.NewUnauthorizedError("Invalid credentials")
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-applicant-0"), bcrypt.DefaultCost)

type SignupInput struct {
	FirstName      string
	LastName       string
	Category       string
	Email          string
	Password       string
	RePassword     string
	Captcha        string
	RandomString   string
	SessionCaptcha string
}

type AuthService struct {
	users repository.UserRepository
	flags *featureflags.Registry
	cost  int
}

func NewAuthService(users repository.UserRepository, flags *featureflags.Registry) *AuthService {
	return &AuthService{users: users, flags: flags, cost: bcrypt.DefaultCost}
}

// GenerateCaptcha returns a fresh signup captcha.
func GenerateCaptcha() string {
	return randomString(captchaLength)
}

func randomString(n int) string {
	max := big.NewInt(int64(len(captchaAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = captchaAlphabet[idx.Int64()]
	}
	return string(b)
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) checkCaptcha(in SignupInput) error {
	if in.Captcha == "" || in.Captcha != in.RandomString {
		return ErrCaptchaMismatch
	}
	if in.SessionCaptcha != "" && in.SessionCaptcha != in.Captcha {
		return ErrCaptchaMismatch
	}
	if in.SessionCaptcha == "" && s.flags.Enabled(featureflags.StrictCaptcha, 0) {
		return ErrCaptchaMismatch
	}
	return nil
}

// Signup creates the account and its profile. Password mismatch is reported
// before the captcha so the applicant fixes the cheaper mistake first.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (user *models.User, err error) {
	defer func() {
		observability.AuthEvents.WithLabelValues("signup", authOutcome(err)).Inc()
	}()

	if in.Password != in.RePassword {
		return nil, ErrPasswordMismatch
	}
	if err := s.checkCaptcha(in); err != nil {
		return nil, err
	}

	email := NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("first name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, models.NewValidationError("category is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user = &models.User{Email: email, Password: string(hash)}
	profile := &models.Profile{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Category:  category,
	}
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (user *models.User, err error) {
	defer func() {
		observability.AuthEvents.WithLabelValues("login", authOutcome(err)).Inc()
	}()

	user, err = s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case models.IsCode(err, models.CodeInternal):
		return observability.OutcomeFailure
	default:
		return observability.OutcomeInvalid
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/mail"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const resetPurpose = "password_reset"

// ErrInvalidResetToken covers bad signatures, expiry, wrong purpose and reuse.
var ErrInvalidResetToken = models.NewValidationError("This password reset link is invalid or has expired")

// ResetClaims are the claims of a password reset token.
type ResetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenStore remembers which reset tokens are still unused.
type TokenStore interface {
	Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error
	Lookup(ctx context.Context, jti string) (uint, bool, error)
	// Consume removes jti and reports whether it was still present.
	Consume(ctx context.Context, jti string) (uint, bool, error)
}

type ResetService struct {
	users    repository.UserRepository
	tokens   TokenStore
	mailer   mail.Mailer
	sessions session.Store
	secret   []byte
	ttl      time.Duration
	baseURL  string
	cost     int
	now      func() time.Time
}

type ResetConfig struct {
	Secret  string
	TTL     time.Duration
	BaseURL string
}

func NewResetService(users repository.UserRepository, tokens TokenStore, mailer mail.Mailer, sessions session.Store, cfg ResetConfig) *ResetService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResetService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		sessions: sessions,
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		baseURL:  cfg.BaseURL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// RequestReset emails a reset link when email belongs to an applicant.
// Unknown addresses succeed silently.
func (s *ResetService) RequestReset(ctx context.Context, email string) (err error) {
	defer func() {
		observability.AuthEvents.WithLabelValues("reset_request", authOutcome(err)).Inc()
	}()

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, jti, err := s.issue(user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.tokens.Put(ctx, jti, user.ID, s.ttl); err != nil {
		return models.NewInternalError(fmt.Errorf("store reset token: %w", err))
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	err = s.mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: "Password reset",
		Body: "A password reset was requested for your faculty recruitment account.\n\n" +
			"Open this link within " + s.ttl.String() + " to choose a new password:\n" + link + "\n\n" +
			"If you did not ask for this, ignore this email.",
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *ResetService) issue(userID uint) (string, string, error) {
	now := s.now()
	jti := uuid.NewString()
	claims := ResetClaims{
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed, jti, err
}

func (s *ResetService) parse(raw string) (*ResetClaims, uint, error) {
	claims := &ResetClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Purpose != resetPurpose || claims.ID == "" {
		return nil, 0, ErrInvalidResetToken
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 {
		return nil, 0, ErrInvalidResetToken
	}
	return claims, uint(uid), nil
}

// Validate checks that token can still be used and returns its applicant.
func (s *ResetService) Validate(ctx context.Context, token string) (uint, error) {
	claims, uid, err := s.parse(token)
	if err != nil {
		return 0, err
	}
	stored, ok, err := s.tokens.Lookup(ctx, claims.ID)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if !ok || stored != uid {
		return 0, ErrInvalidResetToken
	}
	return uid, nil
}

// Complete sets the new password, burns the token and signs the applicant
// out everywhere.
func (s *ResetService) Complete(ctx context.Context, token, password, confirm string) (err error) {
	defer func() {
		observability.AuthEvents.WithLabelValues("reset_complete", authOutcome(err)).Inc()
	}()

	if password != confirm {
		return ErrPasswordMismatch
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}
	claims, uid, err := s.parse(token)
	if err != nil {
		return err
	}

	stored, ok, err := s.tokens.Consume(ctx, claims.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok || stored != uid {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.restore(ctx, claims, uid)
		return models.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, uid, string(hash)); err != nil {
		s.restore(ctx, claims, uid)
		return err
	}
	if s.sessions != nil {
		if err := s.sessions.DeleteUser(ctx, uid); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to revoke sessions after password reset",
				slog.Uint64("user_id", uint64(uid)), slog.String("error", err.Error()))
		}
	}
	return nil
}

// restore puts a consumed token back after the password write failed, so the
// applicant can retry the same link until it expires.
func (s *ResetService) restore(ctx context.Context, claims *ResetClaims, uid uint) {
	left := claims.ExpiresAt.Sub(s.now())
	if left <= 0 {
		return
	}
	if err := s.tokens.Put(ctx, claims.ID, uid, left); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to restore reset token",
			slog.Uint64("user_id", uint64(uid)), slog.String("error", err.Error()))
	}
}

// RedisTokenStore keeps reset tokens under reset:<jti>.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, cache.ResetTokenKey(jti), userID, ttl).Err()
}

func (s *RedisTokenStore) Lookup(ctx context.Context, jti string) (uint, bool, error) {
	return redisUint(s.rdb.Get(ctx, cache.ResetTokenKey(jti)))
}

func (s *RedisTokenStore) Consume(ctx context.Context, jti string) (uint, bool, error) {
	return redisUint(s.rdb.GetDel(ctx, cache.ResetTokenKey(jti)))
}

func redisUint(cmd *redis.StringCmd) (uint, bool, error) {
	v, err := cmd.Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint(v), true, nil
}

// MemoryTokenStore is used when Redis is not configured.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

type memoryToken struct {
	userID  uint
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryToken), now: time.Now}
}

func (s *MemoryTokenStore) Put(_ context.Context, jti string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = memoryToken{userID: userID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Lookup(_ context.Context, jti string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[jti]
	if !ok || s.now().After(t.expires) {
		return 0, false, nil
	}
	return t.userID, true, nil
}

func (s *MemoryTokenStore) Consume(_ context.Context, jti string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[jti]
	delete(s.tokens, jti)
	if !ok || s.now().After(t.expires) {
		return 0, false, nil
	}
	return t.userID, true, nil
}

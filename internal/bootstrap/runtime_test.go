package bootstrap

import (
	"context"
	"testing"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func devConfig(password string) *config.Config {
	return &config.Config{
		Env:                   "development",
		DevBootstrapApplicant: true,
		DevApplicantEmail:     " Demo@Example.com ",
		DevApplicantPassword:  password,
	}
}

func TestEnsureDevApplicant_CreatesThenResets(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, ensureDevApplicant(ctx, devConfig("first-pass1"), db))
	require.NoError(t, ensureDevApplicant(ctx, devConfig("second-pass2"), db))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "demo@example.com", users[0].Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("second-pass2")))

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", users[0].ID).First(&profile).Error)
	assert.Equal(t, "Demo", profile.FirstName)
}

func TestEnsureDevApplicant_Skipped(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	prod := devConfig("first-pass1")
	prod.Env = "production"
	require.NoError(t, ensureDevApplicant(ctx, prod, db))

	off := devConfig("first-pass1")
	off.DevBootstrapApplicant = false
	require.NoError(t, ensureDevApplicant(ctx, off, db))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEnsureDevApplicant_RequiresPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	assert.Error(t, ensureDevApplicant(context.Background(), devConfig(""), db))
}

func TestSeedDemo_OnlyIntoEmptyDatabase(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, seedDemo(ctx, db, 2))
	require.NoError(t, seedDemo(ctx, db, 2))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
	require.NoError(t, db.Model(&models.Statements{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

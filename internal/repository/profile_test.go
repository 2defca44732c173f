package repository

import (
	"context"
	"testing"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := testutil.CreateApplicant(t, db, "asha@example.edu", "secret123")

	t.Run("GetByUserID", func(t *testing.T) {
		profile, err := repo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rao", profile.LastName)
		assert.Equal(t, "GEN", profile.Category)

		_, err = repo.GetByUserID(ctx, user.ID+1)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("GetWithDocuments without uploads", func(t *testing.T) {
		docs, err := repo.GetWithDocuments(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Asha", docs.FirstName)
		assert.Nil(t, docs.PhdPath)
		assert.Nil(t, docs.ResearchPath)
	})

	t.Run("GetWithDocuments missing profile", func(t *testing.T) {
		_, err := repo.GetWithDocuments(ctx, user.ID+1)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("UploadNames", func(t *testing.T) {
		names, err := repo.UploadNames(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, names)

		personal := models.PersonalDetails{ImagePath: testutil.StrPtr("userfile-1.png")}
		personal.SetOwner(user.ID, user.Email)
		require.NoError(t, db.Create(&personal).Error)
		docs := models.Documents{SignPath: testutil.StrPtr("signature-2.png"), PhdPath: testutil.StrPtr("")}
		docs.SetOwner(user.ID, user.Email)
		require.NoError(t, db.Create(&docs).Error)

		names, err = repo.UploadNames(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"userfile-1.png", "signature-2.png"}, names)

		names, err = repo.UploadNames(ctx, user.ID+1)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("List", func(t *testing.T) {
		profiles, err := repo.List(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, user.ID, profiles[0].UserID)
	})
}

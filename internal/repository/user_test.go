package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedEmail string
		expectedCode  string
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "email", "password"}).
					AddRow(1, "asha@example.edu", "$2a$10$hash")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedEmail: "asha@example.edu",
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
			},
			expectedCode: models.CodeNotFound,
		},
		{
			name:   "Database Error",
			userID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(2, 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectedCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedCode != "" {
				assert.True(t, models.IsCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, user)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tt.expectedEmail, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password"}).AddRow(7, "asha@example.edu", "hash")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("asha@example.edu", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "asha@example.edu")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(7), user.ID)
		assert.Equal(t, "hash", user.Password)
	})

	t.Run("Absent returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("nobody@example.edu", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

		user, err := repo.GetByEmail(ctx, "nobody@example.edu")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "asha@example.edu", Password: "hash"}
	profile := &models.Profile{FirstName: "Asha", LastName: "Rao", Category: "GEN"}
	require.NoError(t, repo.CreateWithProfile(ctx, user, profile))
	require.NotZero(t, user.ID)

	var stored models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "asha@example.edu", stored.Email)
	assert.Equal(t, "Asha Rao", stored.FullName())

	t.Run("Duplicate email is a conflict and leaves no orphan profile", func(t *testing.T) {
		dup := &models.User{Email: "asha@example.edu", Password: "other"}
		err := repo.CreateWithProfile(ctx, dup, &models.Profile{FirstName: "A", LastName: "B", Category: "OBC"})
		assert.True(t, models.IsCode(err, models.CodeConflict), "got %v", err)

		var count int64
		require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := testutil.CreateApplicant(t, db, "asha@example.edu", "secret123")

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "new-hash", stored.Password)

	err := repo.UpdatePassword(ctx, user.ID+100, "x")
	assert.True(t, models.IsCode(err, models.CodeNotFound), "got %v", err)
}

func TestUserRepository_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	for _, email := range []string{"a@example.edu", "b@example.edu", "c@example.edu"} {
		testutil.CreateApplicant(t, db, email, "secret123")
	}

	users, err := repo.List(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.edu", users[0].Email)
	assert.Equal(t, "c@example.edu", users[1].Email)
}

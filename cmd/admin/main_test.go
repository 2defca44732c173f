package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func useDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewTestDB(t)
	prev := openService
	openService = func() (*service.ApplicantService, error) { return newApplicantService(db), nil }
	t.Cleanup(func() { openService = prev })
	return db
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	db := useDB(t)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No applicants found.")

	testutil.CreateApplicant(t, db, "asha@example.edu", "faculty2024")
	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "asha@example.edu")
	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, "GEN")
}

func TestExport(t *testing.T) {
	db := useDB(t)
	user := testutil.CreateApplicant(t, db, "asha@example.edu", "faculty2024")
	st := &models.Statements{ResearchStatement: "Graph algorithms"}
	st.SetOwner(user.ID, user.Email)
	require.NoError(t, db.Create(st).Error)

	out, err := run(t, "export", "ASHA@example.edu", "--format", "json")
	require.NoError(t, err)
	var summary models.ApplicationSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "Asha", summary.Profile.FirstName)
	require.Len(t, summary.Statements, 1)
	assert.Equal(t, "Graph algorithms", summary.Statements[0].ResearchStatement)

	out, err = run(t, "export", "asha@example.edu")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "profile")

	_, err = run(t, "export", "asha@example.edu", "-f", "xml")
	assert.Error(t, err)

	_, err = run(t, "export", "nobody@example.edu")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestSetPassword(t *testing.T) {
	db := useDB(t)
	user := testutil.CreateApplicant(t, db, "asha@example.edu", "faculty2024")

	_, err := run(t, "set-password", "asha@example.edu", "short")
	assert.True(t, models.IsCode(err, models.CodeValidation))

	out, err := run(t, "set-password", "asha@example.edu", "renewed2026")
	require.NoError(t, err)
	assert.Contains(t, out, "Password updated")

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("renewed2026")))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/featureflags"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSummaryFixture(t *testing.T, flags string) (*SummaryService, *ApplicationService, *gorm.DB, models.Owner) {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := testutil.CreateApplicant(t, db, "asha@example.edu", "faculty2024")
	summary := NewSummaryService(
		repository.NewProfileRepository(db),
		repository.NewSummaryRepository(db),
		featureflags.NewRegistry(flags),
		time.Minute,
	)
	apps := NewApplicationService(repository.NewApplicationRepository(db), nil)
	return summary, apps, db, ownerOf(user)
}

func TestSummaryService_Build(t *testing.T) {
	summary, apps, _, owner := newSummaryFixture(t, "")
	ctx := context.Background()

	_, err := apps.SaveEducation(ctx, owner, FormValues{
		"college_phd": {"IIT Patna"}, "add_degree[]": {"M.Phil"}, "add_college[]": {"JNU"},
		"add_subjects[]": {"Theory"}, "add_yoj[]": {"2014"}, "add_yog[]": {"2015"},
		"add_duration[]": {"1"}, "add_perce[]": {"82"}, "add_division[]": {"First"},
	})
	require.NoError(t, err)
	require.NoError(t, apps.SaveService(ctx, owner, FormValues{
		"award_name[]": {"Best Paper", "Young Scientist"}, "awarded_by[]": {"VLDB", "INSA"}, "award_year[]": {"2023", "2024"},
	}))

	out, err := summary.Build(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", out.Profile.FirstName)
	require.Len(t, out.Education, 1)
	require.Len(t, out.Education[0].Additional, 1)
	assert.Equal(t, "JNU", out.Education[0].Additional[0].College)
	require.Len(t, out.Service.Awards, 2)
	assert.Equal(t, "Best Paper", out.Service.Awards[0].AwardName, "rows keep insertion order")

	// Sections never filled in come back empty, not nil.
	assert.NotNil(t, out.Publications.Top)
	assert.Empty(t, out.Publications.Top)
	assert.NotNil(t, out.Theses.Ug)
	assert.Empty(t, out.Referees)
}

func TestSummaryService_BuildUnknownApplicant(t *testing.T) {
	summary, _, _, _ := newSummaryFixture(t, "")
	_, err := summary.Build(context.Background(), 4242)
	assertCode(t, err, models.CodeNotFound)
}

func TestSummaryService_GetUsesCache(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	summary, apps, db, owner := newSummaryFixture(t, "summary_cache=on")
	ctx := context.Background()

	first, err := summary.Get(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Empty(t, first.Service.Awards)

	// Written behind the repository's back, so the cached copy stays.
	award := models.Award{AwardName: "Best Paper", AwardedBy: "VLDB", AwardYear: "2023"}
	award.SetOwner(owner.UserID, owner.Email)
	require.NoError(t, db.Create(&award).Error)

	cached, err := summary.Get(ctx, owner.UserID)
	require.NoError(t, err)
	if diff := cmp.Diff(first, cached); diff != "" {
		t.Errorf("cached summary differs (-built +cached):\n%s", diff)
	}

	// A repository write drops the cached copy.
	require.NoError(t, apps.SaveStatements(ctx, owner, FormValues{"research_statement": {"<p>Storage engines</p>\r\n"}}))
	fresh, err := summary.Get(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Len(t, fresh.Service.Awards, 1)
	require.Len(t, fresh.Statements, 1)
	assert.Equal(t, "Storage engines", fresh.Statements[0].ResearchStatement)
}

func TestSummaryService_GetWithoutCacheFlag(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	summary, _, _, owner := newSummaryFixture(t, "summary_cache=off")
	_, err := summary.Get(context.Background(), owner.UserID)
	require.NoError(t, err)

	exists, err := rdb.Exists(context.Background(), cache.SummaryKey(owner.UserID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

package service

import (
	"context"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/featureflags"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// summaryConcurrency bounds the lookups one print request runs at once.
const summaryConcurrency = 6

// SummaryService assembles the whole application for the print page.
type SummaryService struct {
	profiles repository.ProfileRepository
	rows     repository.SummaryRepository
	flags    *featureflags.Registry
	ttl      time.Duration
}

func NewSummaryService(profiles repository.ProfileRepository, rows repository.SummaryRepository, flags *featureflags.Registry, ttl time.Duration) *SummaryService {
	if ttl <= 0 {
		ttl = cache.SummaryTTL
	}
	return &SummaryService{profiles: profiles, rows: rows, flags: flags, ttl: ttl}
}

// Get returns the applicant's summary, from cache when enabled.
func (s *SummaryService) Get(ctx context.Context, userID uint) (*models.ApplicationSummary, error) {
	useCache := s.flags.Enabled(featureflags.SummaryCache, userID)
	key := cache.SummaryKey(userID)

	if useCache {
		var cached models.ApplicationSummary
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			observability.SummaryCacheResults.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		observability.SummaryCacheResults.WithLabelValues("miss").Inc()
	}

	summary, err := s.Build(ctx, userID)
	if err != nil {
		return nil, err
	}
	if useCache {
		_ = cache.SetJSON(ctx, key, summary, s.ttl)
	}
	return summary, nil
}

// Build runs every lookup against the database.
func (s *SummaryService) Build(ctx context.Context, userID uint) (*models.ApplicationSummary, error) {
	span, ctx := observability.NewSpan(ctx, "SummaryService.Build", attribute.Int("user.id", int(userID)))
	defer span.End()

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	out := &models.ApplicationSummary{Profile: *profile}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	find := func(dest any) {
		g.Go(func() error { return s.rows.FindOwned(gctx, userID, dest) })
	}
	find(&out.Personal)
	find(&out.Application)
	find(&out.Documents)
	find(&out.Referees)
	g.Go(func() error {
		rows, err := s.rows.FindEducation(gctx, userID)
		out.Education = rows
		return err
	})
	find(&out.Experience.Present)
	find(&out.Experience.History)
	find(&out.Experience.Teaching)
	find(&out.Experience.Research)
	find(&out.Experience.Industrial)
	find(&out.Experience.Areas)
	find(&out.Publications.Summary)
	find(&out.Publications.Top)
	find(&out.Publications.Patents)
	find(&out.Publications.Books)
	find(&out.Publications.Chapters)
	find(&out.Publications.Links)
	find(&out.Service.Memberships)
	find(&out.Service.Trainings)
	find(&out.Service.Awards)
	find(&out.Service.Sponsored)
	find(&out.Service.Consultancy)
	find(&out.Theses.Phd)
	find(&out.Theses.Pg)
	find(&out.Theses.Ug)
	find(&out.Statements)

	if err := g.Wait(); err != nil {
		span.SetError(err)
		return nil, err
	}
	return out, nil
}

// AngelaMos | 2026
// service.go

package jobs

import (
	"context"
	"fmt"

	"github.com/nursebridge/api/internal/entitlement"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListJobs fetches a page of postings. The nofilter widening is applied
// only when the snapshot actually grants it; a client asking for the
// unfiltered feed without the unlock silently gets the default feed.
func (s *Service) ListJobs(
	ctx context.Context,
	snapshot entitlement.Snapshot,
	params ListJobsParams,
) ([]Job, int, error) {
	if params.IncludeFiltered &&
		!entitlement.DecideFeature(snapshot, entitlement.FeatureNoFilter).Granted() {
		params.IncludeFiltered = false
	}

	return s.repo.List(ctx, params)
}

func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMarketInsights(
	ctx context.Context,
	specialty, region string,
) (*MarketInsights, error) {
	metrics, err := s.repo.MarketMetrics(ctx, specialty, region)
	if err != nil {
		return nil, fmt.Errorf("get market insights: %w", err)
	}

	points := make([]MarketPoint, 0, len(metrics))
	for _, m := range metrics {
		points = append(points, MarketPoint{
			Month:     m.Month.Format("2006-01"),
			MedianPay: m.MedianPay,
			Openings:  m.Openings,
		})
	}

	return &MarketInsights{
		Specialty: specialty,
		Region:    region,
		Points:    points,
	}, nil
}

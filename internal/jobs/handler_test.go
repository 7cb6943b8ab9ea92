// AngelaMos | 2026
// handler_test.go

package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
	"github.com/nursebridge/api/internal/middleware"
)

type fakeRepo struct {
	jobs       []Job
	total      int // board size when larger than the page; 0 means len(jobs)
	metrics    []MarketMetric
	lastParams ListJobsParams
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &f.jobs[i], nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, params ListJobsParams) ([]Job, int, error) {
	f.lastParams = params
	total := f.total
	if total == 0 {
		total = len(f.jobs)
	}
	return f.jobs, total, nil
}

func (f *fakeRepo) MarketMetrics(_ context.Context, _, _ string) ([]MarketMetric, error) {
	return f.metrics, nil
}

func testJobs(n int) []Job {
	posted := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, Job{
			ID:           string(rune('a' + i)),
			Title:        "ICU Nurse",
			Specialty:    "ICU",
			Location:     "Denver, CO",
			Facility:     "St. Example",
			ShiftType:    "nights",
			PayMin:       45,
			PayMax:       62,
			SalaryScore:  88,
			ContactName:  "Pat Recruiter",
			ContactEmail: "pat@hospital.example",
			ContactPhone: "555-0101",
			PostedAt:     posted,
		})
	}
	return jobs
}

func serveWithSnapshot(
	t *testing.T,
	h *Handler,
	snapshot entitlement.Snapshot,
	method, target string,
) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.SnapshotKey, snapshot)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestListJobsTruncatedForFree(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(5)}
	h := NewHandler(NewService(repo), 3)

	free := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierFree, 0)}
	rec := serveWithSnapshot(t, h, free, http.MethodGet, "/jobs")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Decision string       `json:"decision"`
			Items    []JobSummary `json:"items"`
			Total    int          `json:"total"`
			Hidden   int          `json:"hidden"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "preview", body.Data.Decision)
	assert.Len(t, body.Data.Items, 3)
	assert.Equal(t, 5, body.Data.Total)
	assert.Equal(t, 2, body.Data.Hidden)
}

func TestListJobsFullForStarter(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(5)}
	h := NewHandler(NewService(repo), 3)

	starter := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierStarter, 0)}
	rec := serveWithSnapshot(t, h, starter, http.MethodGet, "/jobs")

	var body struct {
		Data struct {
			Decision string       `json:"decision"`
			Items    []JobSummary `json:"items"`
			Hidden   int          `json:"hidden"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "allow", body.Data.Decision)
	assert.Len(t, body.Data.Items, 5)
	assert.Zero(t, body.Data.Hidden)
}

// The "+N more" affordance counts the whole board, not the fetched
// page: 3 visible of 50 postings must read 47 hidden, matching the
// pagination meta's total.
func TestListJobsHiddenCountsWholeBoard(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(5), total: 50}
	h := NewHandler(NewService(repo), 3)

	free := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierFree, 0)}
	rec := serveWithSnapshot(t, h, free, http.MethodGet, "/jobs")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items  []JobSummary `json:"items"`
			Total  int          `json:"total"`
			Hidden int          `json:"hidden"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Len(t, body.Data.Items, 3)
	assert.Equal(t, 50, body.Data.Total)
	assert.Equal(t, 47, body.Data.Hidden)
	assert.Equal(t, body.Meta.Total, body.Data.Total,
		"gate affordance and pagination meta agree on the board size")
}

// include_filtered is honored only behind the nofilter unlock; everyone
// else silently gets the default feed.
func TestListJobsFilteredFeedGating(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(1)}
	h := NewHandler(NewService(repo), 3)

	free := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPremium, 0)}
	serveWithSnapshot(t, h, free, http.MethodGet, "/jobs?include_filtered=true")
	assert.False(t, repo.lastParams.IncludeFiltered,
		"tier alone must not widen the feed")

	unlocked := entitlement.Snapshot{
		Session:       entitlement.NewSession("u", entitlement.TierFree, 0),
		UnlockedFlags: map[string]struct{}{entitlement.FlagNoFilter: {}},
	}
	serveWithSnapshot(t, h, unlocked, http.MethodGet, "/jobs?include_filtered=true")
	assert.True(t, repo.lastParams.IncludeFiltered)
}

// Contact details and the raw salary score must be absent from the
// response body for viewers below the gates, not merely marked hidden.
func TestGetJobRedaction(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(1)}
	h := NewHandler(NewService(repo), 3)

	free := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierFree, 0)}
	rec := serveWithSnapshot(t, h, free, http.MethodGet, "/jobs/a")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.NotContains(t, body, "pat@hospital.example")
	assert.NotContains(t, body, "Pat Recruiter")
	assert.NotContains(t, body, "555-0101")
	assert.NotContains(t, body, "88")
	assert.Contains(t, body, "ICU Nurse", "public fields still go out")
}

func TestGetJobGrantedDetail(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(1)}
	h := NewHandler(NewService(repo), 3)

	pro := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPro, 0)}
	rec := serveWithSnapshot(t, h, pro, http.MethodGet, "/jobs/a")

	body := rec.Body.String()
	assert.Contains(t, body, "pat@hospital.example")
	assert.Contains(t, body, `"88"`)
	assert.Contains(t, body, "$45-$62/hr")
}

// The contact endpoint sits behind the route guard: below the gate it
// 403s outright, above it the raw card comes back.
func TestGetJobContactGuarded(t *testing.T) {
	repo := &fakeRepo{jobs: testJobs(1)}
	h := NewHandler(NewService(repo), 3)

	free := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierFree, 0)}
	rec := serveWithSnapshot(t, h, free, http.MethodGet, "/jobs/a/contact")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPGRADE_REQUIRED")
	assert.NotContains(t, rec.Body.String(), "pat@hospital.example")

	pro := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPro, 0)}
	rec = serveWithSnapshot(t, h, pro, http.MethodGet, "/jobs/a/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pat@hospital.example")
	assert.Contains(t, rec.Body.String(), "$45-$62/hr")
}

func TestMarketInsightsTeaserForNonPremium(t *testing.T) {
	repo := &fakeRepo{metrics: []MarketMetric{
		{Month: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), MedianPay: 61, Openings: 340},
	}}
	h := NewHandler(NewService(repo), 3)

	pro := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPro, 0)}
	rec := serveWithSnapshot(t, h, pro, http.MethodGet, "/insights/market?specialty=ICU")

	body := rec.Body.String()
	assert.Contains(t, body, `"preview"`)
	assert.Contains(t, body, "Sample")
	assert.NotContains(t, body, "340", "real datapoints must not ship in the teaser")
}

func TestMarketInsightsRealDataForPremium(t *testing.T) {
	repo := &fakeRepo{metrics: []MarketMetric{
		{Month: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), MedianPay: 61, Openings: 340},
	}}
	h := NewHandler(NewService(repo), 3)

	premium := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPremium, 0)}
	rec := serveWithSnapshot(t, h, premium, http.MethodGet, "/insights/market?specialty=ICU&region=west")

	body := rec.Body.String()
	assert.Contains(t, body, `"allow"`)
	assert.Contains(t, body, "2026-07")
	assert.Contains(t, body, "340")
}

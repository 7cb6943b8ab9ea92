// AngelaMos | 2026
// handler.go

package jobs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
	"github.com/nursebridge/api/internal/gate"
	"github.com/nursebridge/api/internal/middleware"
)

type Handler struct {
	service      *Service
	previewItems int
}

func NewHandler(service *Service, previewItems int) *Handler {
	if previewItems <= 0 {
		previewItems = 3
	}
	return &Handler{
		service:      service,
		previewItems: previewItems,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.ListJobs)
		r.Get("/{jobID}", h.GetJob)

		// Real data only: below the gate this 403s instead of teasing.
		r.With(middleware.RequireFeature(entitlement.FeatureEmployerContacts)).
			Get("/{jobID}/contact", h.GetJobContact)
	})

	r.Get("/insights/market", h.GetMarketInsights)
}

// ListJobs serves the job board. Free and anonymous viewers get the
// first few real rows of the page plus a "+N more" affordance; the
// hidden tail never leaves the server.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	snapshot := middleware.GetSnapshot(r.Context())

	params := ListJobsParams{
		Page:            parseIntQuery(r, "page", 1),
		PageSize:        parseIntQuery(r, "page_size", 20),
		Specialty:       r.URL.Query().Get("specialty"),
		Location:        r.URL.Query().Get("location"),
		IncludeFiltered: r.URL.Query().Get("include_filtered") == "true",
	}

	items, total, err := h.service.ListJobs(r.Context(), snapshot, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	listing := gate.TruncateList(
		snapshot,
		entitlement.FeatureJobListFull,
		ToJobSummaryList(items),
		h.previewItems,
		total,
	)

	params.Normalize()
	core.Paginated(w, listing, params.Page, params.PageSize, total)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	snapshot := middleware.GetSnapshot(r.Context())
	jobID := chi.URLParam(r, "jobID")

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, JobDetailResponse{
		Job: ToJobSummary(job),
		SalaryScore: gate.InlineBlur(
			snapshot,
			entitlement.FeatureSalaryInsights,
			func() string { return strconv.Itoa(job.SalaryScore) },
		),
		Employer: gate.FullBlock(
			snapshot,
			entitlement.FeatureEmployerContacts,
			func() EmployerContact {
				return EmployerContact{
					Name:  job.ContactName,
					Email: job.ContactEmail,
					Phone: job.ContactPhone,
					Pay:   fmt.Sprintf("$%d-$%d/hr", job.PayMin, job.PayMax),
				}
			},
			nil,
		),
	})
}

// GetJobContact serves the bare employer contact card. The route guard
// already rejected viewers the gate does not grant, so no redaction
// happens here.
func (h *Handler) GetJobContact(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, EmployerContact{
		Name:  job.ContactName,
		Email: job.ContactEmail,
		Phone: job.ContactPhone,
		Pay:   fmt.Sprintf("$%d-$%d/hr", job.PayMin, job.PayMax),
	})
}

// sampleMarketInsights is the static teaser shown to viewers below
// premium. Fabricated shape-matching data, safe to leave the server.
var sampleMarketInsights = MarketInsights{
	Specialty: "Sample",
	Region:    "Sample",
	Points: []MarketPoint{
		{Month: "2026-01", MedianPay: 48, Openings: 120},
		{Month: "2026-02", MedianPay: 52, Openings: 135},
		{Month: "2026-03", MedianPay: 50, Openings: 128},
	},
}

func (h *Handler) GetMarketInsights(w http.ResponseWriter, r *http.Request) {
	snapshot := middleware.GetSnapshot(r.Context())

	specialty := r.URL.Query().Get("specialty")
	if specialty == "" {
		specialty = "ICU"
	}
	region := r.URL.Query().Get("region")
	if region == "" {
		region = "national"
	}

	decision := entitlement.DecideFeature(
		snapshot,
		entitlement.FeatureMarketCharts,
	)

	// Real chart data is loaded only when the viewer may see it.
	if !decision.Granted() {
		core.OK(w, gate.FullBlock(
			snapshot,
			entitlement.FeatureMarketCharts,
			func() *MarketInsights { return nil },
			sampleMarketInsights,
		))
		return
	}

	insights, err := h.service.GetMarketInsights(r.Context(), specialty, region)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, gate.FullBlock(
		snapshot,
		entitlement.FeatureMarketCharts,
		func() *MarketInsights { return insights },
		sampleMarketInsights,
	))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

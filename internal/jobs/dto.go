// AngelaMos | 2026
// dto.go

package jobs

import (
	"time"

	"github.com/nursebridge/api/internal/gate"
)

type ListJobsParams struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`

	// IncludeFiltered widens the feed to postings the default feed hides.
	// Only honored behind the nofilter gate.
	IncludeFiltered bool `json:"include_filtered"`
}

func (p *ListJobsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListJobsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// JobSummary is the list-row view. No contact data and no salary score:
// those stay behind their own gates on the detail view.
type JobSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Specialty string    `json:"specialty"`
	Location  string    `json:"location"`
	Facility  string    `json:"facility"`
	ShiftType string    `json:"shift_type"`
	PostedAt  time.Time `json:"posted_at"`
}

// EmployerContact is the pro-gated block on a job detail.
type EmployerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Pay   string `json:"pay_range"`
}

// JobDetailResponse composes the public posting with its gated regions.
type JobDetailResponse struct {
	Job         JobSummary        `json:"job"`
	SalaryScore gate.BlurredValue `json:"salary_score"`
	Employer    gate.Region       `json:"employer"`
}

// MarketPoint is one chart datapoint.
type MarketPoint struct {
	Month     string `json:"month"`
	MedianPay int    `json:"median_pay"`
	Openings  int    `json:"openings"`
}

type MarketInsights struct {
	Specialty string        `json:"specialty"`
	Region    string        `json:"region"`
	Points    []MarketPoint `json:"points"`
}

func ToJobSummary(j *Job) JobSummary {
	return JobSummary{
		ID:        j.ID,
		Title:     j.Title,
		Specialty: j.Specialty,
		Location:  j.Location,
		Facility:  j.Facility,
		ShiftType: j.ShiftType,
		PostedAt:  j.PostedAt,
	}
}

func ToJobSummaryList(items []Job) []JobSummary {
	summaries := make([]JobSummary, 0, len(items))
	for _, j := range items {
		summaries = append(summaries, ToJobSummary(&j))
	}
	return summaries
}

// AngelaMos | 2026
// repository.go

package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nursebridge/api/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, params ListJobsParams) ([]Job, int, error)
	MarketMetrics(
		ctx context.Context,
		specialty, region string,
	) ([]MarketMetric, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	query := `
		SELECT id, title, specialty, location, facility, shift_type,
		       pay_min, pay_max, salary_score,
		       contact_name, contact_email, contact_phone,
		       filtered, posted_at, created_at, updated_at
		FROM jobs
		WHERE id = $1`

	var job Job
	err := r.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListJobsParams,
) ([]Job, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if !params.IncludeFiltered {
		conditions = append(conditions, "filtered = FALSE")
	}

	if params.Specialty != "" {
		conditions = append(conditions, fmt.Sprintf("specialty = $%d", argIdx))
		args = append(args, params.Specialty)
		argIdx++
	}

	if params.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argIdx))
		args = append(args, "%"+params.Location+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM jobs WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, title, specialty, location, facility, shift_type,
		       pay_min, pay_max, salary_score,
		       contact_name, contact_email, contact_phone,
		       filtered, posted_at, created_at, updated_at
		FROM jobs
		WHERE %s
		ORDER BY posted_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var items []Job
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}

	return items, total, nil
}

func (r *repository) MarketMetrics(
	ctx context.Context,
	specialty, region string,
) ([]MarketMetric, error) {
	query := `
		SELECT specialty, region, month, median_pay, openings
		FROM market_metrics
		WHERE specialty = $1 AND region = $2
		ORDER BY month ASC
		LIMIT 24`

	var metrics []MarketMetric
	err := r.db.SelectContext(ctx, &metrics, query, specialty, region)
	if err != nil {
		return nil, fmt.Errorf("market metrics: %w", err)
	}

	return metrics, nil
}

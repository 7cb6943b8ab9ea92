// AngelaMos | 2026
// entity.go

package jobs

import (
	"time"
)

type Job struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Specialty    string    `db:"specialty"`
	Location     string    `db:"location"`
	Facility     string    `db:"facility"`
	ShiftType    string    `db:"shift_type"`
	PayMin       int       `db:"pay_min"`
	PayMax       int       `db:"pay_max"`
	SalaryScore  int       `db:"salary_score"`
	ContactName  string    `db:"contact_name"`
	ContactEmail string    `db:"contact_email"`
	ContactPhone string    `db:"contact_phone"`
	Filtered     bool      `db:"filtered"`
	PostedAt     time.Time `db:"posted_at"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// MarketMetric is one month of aggregated pay data for a specialty in a
// region. Premium chart fodder.
type MarketMetric struct {
	Specialty string    `db:"specialty"`
	Region    string    `db:"region"`
	Month     time.Time `db:"month"`
	MedianPay int       `db:"median_pay"`
	Openings  int       `db:"openings"`
}

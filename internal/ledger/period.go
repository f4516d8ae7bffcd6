package ledger

import (
	"fmt"
	"time"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

const dateLayout = "2006-01-02"

// Period is an inclusive date range. A zero From or To leaves that side
// unbounded.
type Period struct {
	From time.Time
	To   time.Time
}

// ParsePeriod parses "YYYY-MM-DD" bounds; empty strings are unbounded.
func ParsePeriod(from, to string) (Period, error) {
	var p Period
	var err error
	if from != "" {
		if p.From, err = time.Parse(dateLayout, from); err != nil {
			return Period{}, fmt.Errorf("parsing from date %q: %w", from, err)
		}
	}
	if to != "" {
		if p.To, err = time.Parse(dateLayout, to); err != nil {
			return Period{}, fmt.Errorf("parsing to date %q: %w", to, err)
		}
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.To.Before(p.From) {
		return Period{}, fmt.Errorf("period ends (%s) before it starts (%s)", to, from)
	}
	return p, nil
}

// Contains reports whether d falls inside the period. Only the calendar
// day of each bound is compared.
func (p Period) Contains(d time.Time) bool {
	day := truncateDay(d)
	if !p.From.IsZero() && day.Before(truncateDay(p.From)) {
		return false
	}
	if !p.To.IsZero() && day.After(truncateDay(p.To)) {
		return false
	}
	return true
}

// Filter returns the lines dated inside the period, in input order.
func (p Period) Filter(lines []model.Line) []model.Line {
	var out []model.Line
	for _, line := range lines {
		if p.Contains(line.Date) {
			out = append(out, line)
		}
	}
	return out
}

func (p Period) String() string {
	from, to := "beginning", "today"
	if !p.From.IsZero() {
		from = p.From.Format(dateLayout)
	}
	if !p.To.IsZero() {
		to = p.To.Format(dateLayout)
	}
	return from + " to " + to
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MarshalJSON renders bounds as "YYYY-MM-DD", or null when unbounded.
func (p Period) MarshalJSON() ([]byte, error) {
	bound := func(t time.Time) string {
		if t.IsZero() {
			return "null"
		}
		return `"` + t.Format(dateLayout) + `"`
	}
	return []byte(`{"from":` + bound(p.From) + `,"to":` + bound(p.To) + `}`), nil
}

// Package schedule computes a project's position against its delivery
// window. Pure functions over project snapshots; now is always a parameter.
package schedule

import (
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
)

// DefaultWindowDays applies when a project has no explicit delivery date.
const DefaultWindowDays = 90

// TimelineStatus is the derived, never-stored view of a project timeline.
type TimelineStatus struct {
	Start         time.Time
	Deadline      time.Time
	ElapsedDays   int
	TotalDays     int
	RemainingDays int
	ProgressRatio float64
	Overdue       bool
}

// ResolveWindow applies the defaulting chain: the implantation start wins,
// then the contract signature, then record creation; the deadline is the
// explicit delivery date or start plus the default window.
func ResolveWindow(p domain.Project) (start, deadline time.Time) {
	switch {
	case p.ImplantationStartedAt != nil:
		start = *p.ImplantationStartedAt
	case p.ContractSignedAt != nil:
		start = *p.ContractSignedAt
	default:
		start = p.CreatedAt
	}
	if p.DeliveryDate != nil {
		deadline = *p.DeliveryDate
	} else {
		deadline = start.AddDate(0, 0, DefaultWindowDays)
	}
	return start, deadline
}

// Status derives elapsed/remaining time and a clamped progress ratio. A
// zero-length (or inverted) window reports ratio 1 so a misconfigured
// project shows as fully consumed rather than dividing by zero.
func Status(p domain.Project, now time.Time) TimelineStatus {
	start, deadline := ResolveWindow(p)
	status := TimelineStatus{
		Start:         start,
		Deadline:      deadline,
		ElapsedDays:   wholeDays(now.Sub(start)),
		TotalDays:     wholeDays(deadline.Sub(start)),
		RemainingDays: wholeDays(deadline.Sub(now)),
		Overdue:       now.After(deadline),
	}
	total := deadline.Sub(start)
	if total <= 0 {
		status.ProgressRatio = 1
		return status
	}
	status.ProgressRatio = clamp(float64(now.Sub(start))/float64(total), 0, 1)
	return status
}

func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

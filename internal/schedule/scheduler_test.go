package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/process-tracker/internal/domain"
)

func ts(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestResolveWindowDefaultingChain(t *testing.T) {
	created := ts(2024, 1, 1)
	signed := ts(2024, 1, 10)
	started := ts(2024, 1, 20)
	delivery := ts(2024, 5, 1)

	tests := []struct {
		name         string
		project      domain.Project
		wantStart    time.Time
		wantDeadline time.Time
	}{
		{
			"implantation start wins",
			domain.Project{CreatedAt: created, ContractSignedAt: ptr(signed), ImplantationStartedAt: ptr(started), DeliveryDate: ptr(delivery)},
			started, delivery,
		},
		{
			"contract signature next",
			domain.Project{CreatedAt: created, ContractSignedAt: ptr(signed)},
			signed, signed.AddDate(0, 0, 90),
		},
		{
			"creation as last resort",
			domain.Project{CreatedAt: created},
			created, created.AddDate(0, 0, 90),
		},
		{
			"explicit delivery without explicit start",
			domain.Project{CreatedAt: created, DeliveryDate: ptr(delivery)},
			created, delivery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, deadline := ResolveWindow(tt.project)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantDeadline, deadline)
		})
	}
}

func TestStatusMidWindow(t *testing.T) {
	project := domain.Project{
		ImplantationStartedAt: ptr(ts(2024, 1, 1)),
		DeliveryDate:          ptr(ts(2024, 3, 1)), // 60-day window
	}
	got := Status(project, ts(2024, 1, 31))

	assert.Equal(t, 30, got.ElapsedDays)
	assert.Equal(t, 60, got.TotalDays)
	assert.Equal(t, 30, got.RemainingDays)
	assert.InDelta(t, 0.5, got.ProgressRatio, 1e-9)
	assert.False(t, got.Overdue)
}

func TestStatusClampsRatio(t *testing.T) {
	project := domain.Project{
		ImplantationStartedAt: ptr(ts(2024, 1, 1)),
		DeliveryDate:          ptr(ts(2024, 2, 1)),
	}

	before := Status(project, ts(2023, 12, 1))
	assert.Zero(t, before.ProgressRatio)
	assert.False(t, before.Overdue)

	after := Status(project, ts(2024, 6, 1))
	assert.Equal(t, 1.0, after.ProgressRatio)
	assert.True(t, after.Overdue)
	assert.Negative(t, after.RemainingDays)
}

func TestStatusZeroWindow(t *testing.T) {
	day := ts(2024, 1, 1)
	project := domain.Project{
		ImplantationStartedAt: ptr(day),
		DeliveryDate:          ptr(day),
	}

	onDay := Status(project, day)
	assert.Equal(t, 1.0, onDay.ProgressRatio)
	assert.Zero(t, onDay.TotalDays)
	assert.False(t, onDay.Overdue)

	later := Status(project, day.AddDate(0, 0, 1))
	assert.Equal(t, 1.0, later.ProgressRatio)
	assert.True(t, later.Overdue)
}

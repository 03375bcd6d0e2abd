package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/sla"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
	dashboardScanSize = 1000
)

// DashboardSummary aggregates the KPI counters shown on the landing screen.
type DashboardSummary struct {
	GeneratedAt           time.Time `json:"generated_at"`
	OpenTickets           int       `json:"open_tickets"`
	InProgressTickets     int       `json:"in_progress_tickets"`
	OverdueTickets        int       `json:"overdue_tickets"`
	DueTodayTickets       int       `json:"due_today_tickets"`
	CriticalTickets       int       `json:"critical_tickets"`
	AverageResolutionDays *float64  `json:"average_resolution_days"`
	RenewalWithin3Months  int       `json:"renewal_within_3_months"`
	Renewal3To6Months     int       `json:"renewal_3_to_6_months"`
	Renewal6To12Months    int       `json:"renewal_6_to_12_months"`
}

// DashboardService computes KPI summaries, caching them briefly in Redis.
type DashboardService struct {
	tickets  repository.TicketRepository
	renewals *RenewalService
	cache    *redis.Client
	logger   *zap.Logger
	now      func() time.Time
}

// DashboardDependencies bundles collaborators.
type DashboardDependencies struct {
	TicketRepo repository.TicketRepository
	Renewals   *RenewalService
	Cache      *redis.Client
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		tickets:  deps.TicketRepo,
		renewals: deps.Renewals,
		cache:    deps.Cache,
		logger:   logger,
		now:      now,
	}
}

// Summary returns the cached summary when fresh, otherwise recomputes.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, summary)
	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardSummary, error) {
	now := s.now()
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{Limit: dashboardScanSize})
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{GeneratedAt: now}
	for _, ticket := range tickets {
		switch ticket.Status {
		case domain.TicketStatusOpen:
			summary.OpenTickets++
		case domain.TicketStatusInProgress:
			summary.InProgressTickets++
		}
		switch sla.Classify(ticket, now) {
		case domain.DeadlineOverdue:
			summary.OverdueTickets++
		case domain.DeadlineDueToday:
			summary.DueTodayTickets++
		}
	}
	summary.CriticalTickets = sla.CriticalCount(tickets, now)
	if avg, ok := sla.AverageResolutionDays(tickets); ok {
		summary.AverageResolutionDays = &avg
	}

	if s.renewals != nil {
		report, err := s.renewals.Report(ctx)
		if err != nil {
			return nil, err
		}
		summary.RenewalWithin3Months = len(report.Buckets[RenewalWithin3Months])
		summary.Renewal3To6Months = len(report.Buckets[Renewal3To6Months])
		summary.Renewal6To12Months = len(report.Buckets[Renewal6To12Months])
	}
	return summary, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *DashboardSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}

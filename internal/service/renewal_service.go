package service

import (
	"context"
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/timewindow"
)

// RenewalBucket labels a contract-expiry range.
type RenewalBucket string

const (
	RenewalWithin3Months RenewalBucket = "WITHIN_3_MONTHS"
	Renewal3To6Months    RenewalBucket = "3_TO_6_MONTHS"
	Renewal6To12Months   RenewalBucket = "6_TO_12_MONTHS"
)

// renewalBoundaries are the month offsets used across dashboards.
var renewalBoundaries = []int{3, 6, 12}

// RenewalEntry is one customer placed in a bucket.
type RenewalEntry struct {
	Customer         domain.Customer
	EffectiveEndDate time.Time
}

// RenewalReport groups customers by time to contract expiry. Customers with
// no usable end date, already-expired contracts, and contracts beyond twelve
// months are all excluded from the buckets.
type RenewalReport struct {
	GeneratedAt time.Time
	Buckets     map[RenewalBucket][]RenewalEntry
}

// RenewalService buckets customers by time-to-expiry.
type RenewalService struct {
	customers repository.CustomerRepository
	now       func() time.Time
}

// NewRenewalService constructs the service.
func NewRenewalService(customers repository.CustomerRepository, now func() time.Time) *RenewalService {
	if now == nil {
		now = time.Now
	}
	return &RenewalService{customers: customers, now: now}
}

// Report classifies every customer into at most one renewal bucket.
func (s *RenewalService) Report(ctx context.Context) (*RenewalReport, error) {
	customers, err := s.customers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	report := &RenewalReport{
		GeneratedAt: now,
		Buckets: map[RenewalBucket][]RenewalEntry{
			RenewalWithin3Months: {},
			Renewal3To6Months:    {},
			Renewal6To12Months:   {},
		},
	}
	cuts := timewindow.MonthCuts(now, renewalBoundaries...)
	for _, customer := range customers {
		end, ok := customer.EffectiveEndDate()
		if !ok {
			continue
		}
		bucket := timewindow.Classify(now, end, cuts)
		if !bucket.InRange() {
			continue
		}
		label := bucketLabel(bucket)
		report.Buckets[label] = append(report.Buckets[label], RenewalEntry{
			Customer:         customer,
			EffectiveEndDate: end,
		})
	}
	return report, nil
}

func bucketLabel(bucket timewindow.Bucket) RenewalBucket {
	switch bucket {
	case timewindow.Bucket(0):
		return RenewalWithin3Months
	case timewindow.Bucket(1):
		return Renewal3To6Months
	default:
		return Renewal6To12Months
	}
}

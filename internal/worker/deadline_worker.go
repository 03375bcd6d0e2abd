package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/process-tracker/internal/config"
	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/events"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/sla"
)

const sweepBatchSize = 1000

// DeadlineWorker periodically scans live tickets and publishes a sweep event
// with critical and overdue counts so downstream listeners can alert.
type DeadlineWorker struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.SweepConfig
	now        func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDeadlineWorker creates the worker.
func NewDeadlineWorker(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.SweepConfig) *DeadlineWorker {
	return &DeadlineWorker{
		tickets:    tickets,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Start launches the sweep loop. No-op when disabled.
func (w *DeadlineWorker) Start(ctx context.Context) {
	if !w.cfg.Enabled {
		w.logger.Info("deadline sweep disabled")
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.cfg.Interval())
		defer ticker.Stop()
		w.logger.Info("deadline sweep started", zap.Duration("interval", w.cfg.Interval()))
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.sweep(ctx); err != nil {
					w.logger.Error("deadline sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (w *DeadlineWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.logger.Info("deadline sweep stopped")
}

func (w *DeadlineWorker) sweep(ctx context.Context) error {
	now := w.now()
	tickets, err := w.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusInProgress},
		Limit:    sweepBatchSize,
	})
	if err != nil {
		return err
	}

	overdue := 0
	for _, ticket := range tickets {
		if sla.Classify(ticket, now) == domain.DeadlineOverdue {
			overdue++
		}
	}

	payload := events.DeadlineSweepPayload{
		OpenTickets:     len(tickets),
		CriticalTickets: sla.CriticalCount(tickets, now),
		OverdueTickets:  overdue,
	}
	w.logger.Info("deadline sweep",
		zap.Int("open", payload.OpenTickets),
		zap.Int("critical", payload.CriticalTickets),
		zap.Int("overdue", payload.OverdueTickets))

	return w.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDeadlineSweep,
		Actor:     events.Actor{System: true},
		Timestamp: now,
		Payload:   payload,
	})
}

package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/process-tracker/internal/service"
)

// NotificationWorker wires the notification service into the dispatcher.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewNotificationWorker creates the worker.
func NewNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{notifications: notifications, logger: logger}
}

// Start registers event handlers. The dispatcher is synchronous, so there is
// no goroutine to manage here.
func (w *NotificationWorker) Start() {
	w.notifications.RegisterHandlers()
	w.logger.Info("notification worker registered")
}

package absence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/absence-request/internal/core/events"
	"github.com/frahmantamala/absence-request/pkg/logger"
)

// Notifier reacts to absence request events. It currently records them in
// the structured log for staff-side auditing. Events published during a
// request keep that request's id through the context logger.
type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(lg *slog.Logger) *Notifier {
	return &Notifier{logger: lg}
}

func (n *Notifier) HandleSubmitted(ctx context.Context, event events.Event) error {
	submitted, ok := event.(*events.AbsenceSubmittedEvent)
	if !ok {
		return fmt.Errorf("expected AbsenceSubmittedEvent, got %T", event)
	}

	logger.FromOr(ctx, n.logger).Info("absence request awaiting review",
		"absence_id", submitted.RequestID,
		"student_id", submitted.StudentID,
		"activity", submitted.Activity,
		"absence_date", submitted.AbsenceDate.Format(DateLayout),
		"event_id", submitted.EventID())
	return nil
}

func (n *Notifier) HandleStatusChanged(ctx context.Context, event events.Event) error {
	changed, ok := event.(*events.AbsenceStatusChangedEvent)
	if !ok {
		return fmt.Errorf("expected AbsenceStatusChangedEvent, got %T", event)
	}

	logger.FromOr(ctx, n.logger).Info("absence request decided",
		"absence_id", changed.RequestID,
		"student_id", changed.StudentID,
		"status", changed.Status,
		"event_id", changed.EventID())
	return nil
}

func (n *Notifier) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeAbsenceSubmitted, n.HandleSubmitted)
	eventBus.Subscribe(events.EventTypeAbsenceStatusChanged, n.HandleStatusChanged)

	n.logger.Info("absence event handlers registered",
		"handlers", []string{events.EventTypeAbsenceSubmitted, events.EventTypeAbsenceStatusChanged})
}

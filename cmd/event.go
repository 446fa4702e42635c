package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/absence-request/internal/absence"
	"github.com/frahmantamala/absence-request/internal/core/events"
	"github.com/frahmantamala/absence-request/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the in-process event bus: publish sample absence events through the registered handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [submitted|status_changed]",
	Short:     "Publish a sample absence event",
	Long:      `Publish a sample absence event to the event bus and run the notifier on it`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"submitted", "status_changed"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(args[0])
	},
}

var (
	eventRequestID int64
	eventStudentID int64
	eventStatus    string
)

func publishTestEvent(kind string) error {
	lg := logger.LoggerWrapper()

	eventBus := events.NewEventBus(lg)
	absence.NewNotifier(lg).RegisterEventHandlers(eventBus)

	var event events.Event
	switch kind {
	case "submitted":
		event = events.NewAbsenceSubmittedEvent(eventRequestID, eventStudentID, absence.OtherActivity, time.Now().AddDate(0, 0, 7))
	case "status_changed":
		if _, ok := absence.ParseStatus(eventStatus); !ok {
			return fmt.Errorf("status must be approved or rejected, got %q", eventStatus)
		}
		event = events.NewAbsenceStatusChangedEvent(eventRequestID, eventStudentID, eventStatus)
	default:
		return fmt.Errorf("unknown event kind %q", kind)
	}

	lg.Info("publishing test event", "event_type", event.EventType(), "event_id", event.EventID())

	if err := eventBus.PublishSync(context.Background(), event); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	lg.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventRequestID, "request-id", 1, "absence request id carried by the event")
	publishEventCmd.Flags().Int64Var(&eventStudentID, "student-id", 1, "student id carried by the event")
	publishEventCmd.Flags().StringVar(&eventStatus, "status", string(absence.StatusApproved), "status for status_changed events")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}

package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAbsenceSubmitted     = "absence_request.submitted"
	EventTypeAbsenceStatusChanged = "absence_request.status_changed"
)

type AbsenceSubmittedEvent struct {
	BaseEvent
	RequestID   int64     `json:"request_id"`
	StudentID   int64     `json:"student_id"`
	Activity    string    `json:"activity"`
	AbsenceDate time.Time `json:"absence_date"`
}

func NewAbsenceSubmittedEvent(requestID, studentID int64, activity string, absenceDate time.Time) *AbsenceSubmittedEvent {
	return &AbsenceSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAbsenceSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":   requestID,
				"student_id":   studentID,
				"activity":     activity,
				"absence_date": absenceDate.Format("2006-01-02"),
			},
		},
		RequestID:   requestID,
		StudentID:   studentID,
		Activity:    activity,
		AbsenceDate: absenceDate,
	}
}

type AbsenceStatusChangedEvent struct {
	BaseEvent
	RequestID int64  `json:"request_id"`
	StudentID int64  `json:"student_id"`
	Status    string `json:"status"`
}

func NewAbsenceStatusChangedEvent(requestID, studentID int64, status string) *AbsenceStatusChangedEvent {
	return &AbsenceStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAbsenceStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"student_id": studentID,
				"status":     status,
			},
		},
		RequestID: requestID,
		StudentID: studentID,
		Status:    status,
	}
}

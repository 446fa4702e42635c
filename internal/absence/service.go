package absence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/absence-request/internal"
	absenceDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/absence"
	"github.com/frahmantamala/absence-request/internal/core/events"
)

var ErrNotFound = errors.New("absence request not found")

// Repository is the persistence side of absence requests.
type Repository interface {
	TransitionStore
	Create(ctx context.Context, req *absenceDatamodel.Request) error
	GetDetail(ctx context.Context, key RequestKey) (*absenceDatamodel.Request, error)
	ListAll(ctx context.Context) ([]absenceDatamodel.StaffListRow, error)
	ListByStudent(ctx context.Context, studentID int64) ([]absenceDatamodel.StudentListRow, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Options struct {
	StrictTransitions bool
	WindowMonths      int
}

type Service struct {
	repo         Repository
	lifecycle    *Lifecycle
	publisher    EventPublisher
	windowMonths int
	now          func() time.Time
	logger       *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, opts Options, logger *slog.Logger) *Service {
	if opts.WindowMonths <= 0 {
		opts.WindowMonths = DefaultWindowMonths
	}
	return &Service{
		repo:         repo,
		lifecycle:    NewLifecycle(repo, opts.StrictTransitions),
		publisher:    publisher,
		windowMonths: opts.WindowMonths,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock replaces the submission clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit validates a new request and stores it as pending.
func (s *Service) Submit(ctx context.Context, dto CreateRequestDTO) (*AbsenceRequest, error) {
	sub, err := dto.Validate(s.now(), s.windowMonths)
	if err != nil {
		s.logger.Debug("absence request validation failed", "error", err)
		return nil, err
	}

	req := NewAbsenceRequest(sub)
	dm := ToDataModel(req)
	if err := s.repo.Create(ctx, dm); err != nil {
		s.logger.Error("failed to create absence request", "error", err, "student_id", sub.StudentID)
		return nil, internal.NewStoreError(fmt.Errorf("create absence request: %w", err))
	}
	req.ID = dm.ID
	req.CreatedAt = dm.CreatedAt
	req.UpdatedAt = dm.UpdatedAt

	s.logger.Info("absence request submitted",
		"request_id", req.ID,
		"student_id", req.StudentID,
		"activity", string(req.Activity))

	s.publish(ctx, events.NewAbsenceSubmittedEvent(req.ID, req.StudentID, string(req.Activity), req.AbsenceDate))
	return req, nil
}

func (s *Service) GetDetail(ctx context.Context, key RequestKey) (*AbsenceRequest, error) {
	dm, err := s.repo.GetDetail(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		s.logger.Error("failed to get absence request", "error", err, "request_id", key.ID, "student_id", key.StudentID)
		return nil, internal.NewStoreError(fmt.Errorf("get absence request: %w", err))
	}
	return FromDataModel(dm), nil
}

// ListAll returns every request with its student's profile. An empty result
// is reported as not found.
func (s *Service) ListAll(ctx context.Context) ([]StaffListItem, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list absence requests", "error", err)
		return nil, internal.NewStoreError(fmt.Errorf("list absence requests: %w", err))
	}
	if len(rows) == 0 {
		return nil, internal.ErrRequestNotFound
	}

	items := make([]StaffListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, StaffListItem{
			StudentID:     row.StudentID,
			ID:            row.ID,
			Status:        Status(row.Status),
			CreatedAt:     row.CreatedAt,
			StudentNumber: row.StudentNumber,
			Department:    row.Department,
			Grade:         row.Grade,
			Class:         row.Class,
			StudentName:   row.StudentName,
		})
	}
	return items, nil
}

func (s *Service) ListForStudent(ctx context.Context, studentID int64) ([]StudentListItem, error) {
	rows, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list student absence requests", "error", err, "student_id", studentID)
		return nil, internal.NewStoreError(fmt.Errorf("list student absence requests: %w", err))
	}
	if len(rows) == 0 {
		return nil, internal.ErrRequestNotFound
	}

	items := make([]StudentListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, StudentListItem{
			ID:            row.ID,
			Status:        Status(row.Status),
			StudentNumber: row.StudentNumber,
			Department:    row.Department,
			Grade:         row.Grade,
			Class:         row.Class,
			StudentName:   row.StudentName,
		})
	}
	return items, nil
}

// UpdateStatus applies a staff decision through the lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, update StatusUpdate) error {
	if err := s.lifecycle.Transition(ctx, update.Key, update.Status); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeInternal {
			s.logger.Error("failed to update absence request status", "error", err,
				"request_id", update.Key.ID, "student_id", update.Key.StudentID)
		}
		return err
	}

	s.logger.Info("absence request status updated",
		"request_id", update.Key.ID,
		"student_id", update.Key.StudentID,
		"status", string(update.Status),
		"strict", s.lifecycle.Strict())

	s.publish(ctx, events.NewAbsenceStatusChangedEvent(update.Key.ID, update.Key.StudentID, string(update.Status)))
	return nil
}

// publish hands the event to the bus detached from the request context;
// subscriber failures never fail the request.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}

package absence

import (
	"time"

	absenceDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/absence"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus accepts only the statuses staff may set.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.IsTerminal()
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// OtherActivity is the catch-all category that makes a comment mandatory.
const OtherActivity = "その他"

type Activity string

func (a Activity) IsOther() bool {
	return a == OtherActivity || a == "other"
}

// PeriodSlot is one class period the student will miss.
type PeriodSlot struct {
	Subject    string
	Instructor string
}

func (p PeriodSlot) Filled() bool {
	return p.Subject != "" && p.Instructor != ""
}

// Periods holds class periods 1 to 4 in order.
type Periods [4]PeriodSlot

func (p Periods) AnyFilled() bool {
	for _, slot := range p {
		if slot.Filled() {
			return true
		}
	}
	return false
}

// RequestKey identifies a request together with the student who owns it.
type RequestKey struct {
	StudentID int64
	ID        int64
}

type AbsenceRequest struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"student_id"`
	AbsenceDate time.Time `json:"absence_date"`
	Activity    Activity  `json:"activity"`
	CompanyName string    `json:"company_name"`
	Periods     Periods   `json:"-"`
	Comment     *string   `json:"comment,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CalendarDate keeps the day t names in its own zone, as midnight UTC. The
// absence_date column is a DATE, so this is the value that round-trips.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *AbsenceRequest) Key() RequestKey {
	return RequestKey{StudentID: r.StudentID, ID: r.ID}
}

// NewAbsenceRequest starts a validated submission in the pending state.
func NewAbsenceRequest(sub *Submission) *AbsenceRequest {
	now := time.Now()
	return &AbsenceRequest{
		StudentID:   sub.StudentID,
		AbsenceDate: sub.AbsenceDate,
		Activity:    sub.Activity,
		CompanyName: sub.CompanyName,
		Periods:     sub.Periods,
		Comment:     sub.Comment,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(r *AbsenceRequest) *absenceDatamodel.Request {
	return &absenceDatamodel.Request{
		ID:                r.ID,
		StudentID:         r.StudentID,
		AbsenceDate:       r.AbsenceDate,
		Activity:          string(r.Activity),
		CompanyName:       r.CompanyName,
		Period1Subject:    nullable(r.Periods[0].Subject),
		Period1Instructor: nullable(r.Periods[0].Instructor),
		Period2Subject:    nullable(r.Periods[1].Subject),
		Period2Instructor: nullable(r.Periods[1].Instructor),
		Period3Subject:    nullable(r.Periods[2].Subject),
		Period3Instructor: nullable(r.Periods[2].Instructor),
		Period4Subject:    nullable(r.Periods[3].Subject),
		Period4Instructor: nullable(r.Periods[3].Instructor),
		Comment:           r.Comment,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func FromDataModel(r *absenceDatamodel.Request) *AbsenceRequest {
	return &AbsenceRequest{
		ID:          r.ID,
		StudentID:   r.StudentID,
		AbsenceDate: CalendarDate(r.AbsenceDate),
		Activity:    Activity(r.Activity),
		CompanyName: r.CompanyName,
		Periods: Periods{
			{Subject: deref(r.Period1Subject), Instructor: deref(r.Period1Instructor)},
			{Subject: deref(r.Period2Subject), Instructor: deref(r.Period2Instructor)},
			{Subject: deref(r.Period3Subject), Instructor: deref(r.Period3Instructor)},
			{Subject: deref(r.Period4Subject), Instructor: deref(r.Period4Instructor)},
		},
		Comment:   r.Comment,
		Status:    Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

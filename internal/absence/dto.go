package absence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/frahmantamala/absence-request/internal/core/common/validation"
)

const (
	DateLayout          = "2006-01-02"
	CommentMaxLength    = 100
	DefaultWindowMonths = 3
)

// CreateRequestDTO is the POST /requests payload. Period field names follow
// the registration_details columns.
type CreateRequestDTO struct {
	validation.Decoded
	StudentID         json.Number `json:"student_id"`
	AbsenceDate       string      `json:"absence_date"`
	Activity          string      `json:"activity"`
	CompanyName       string      `json:"company_name"`
	Period1Subject    string      `json:"time_class_information_subject_name"`
	Period1Instructor string      `json:"time_class_information_instructor"`
	Period2Subject    string      `json:"two_time_class_information_subject_name"`
	Period2Instructor string      `json:"two_time_class_information_instructor"`
	Period3Subject    string      `json:"three_time_class_information_subject_name"`
	Period3Instructor string      `json:"three_time_class_information_instructor"`
	Period4Subject    string      `json:"four_time_class_information_subject_name"`
	Period4Instructor string      `json:"four_time_class_information_instructor"`
	Comment           *string     `json:"comment"`
}

// Submission is a creation payload that passed validation.
type Submission struct {
	StudentID   int64
	AbsenceDate time.Time
	Activity    Activity
	CompanyName string
	Periods     Periods
	Comment     *string
}

var periodFields = []string{
	"time_class_information_subject_name", "time_class_information_instructor",
	"two_time_class_information_subject_name", "two_time_class_information_instructor",
	"three_time_class_information_subject_name", "three_time_class_information_instructor",
	"four_time_class_information_subject_name", "four_time_class_information_instructor",
}

func (d CreateRequestDTO) Periods() Periods {
	return Periods{
		{Subject: d.Period1Subject, Instructor: d.Period1Instructor},
		{Subject: d.Period2Subject, Instructor: d.Period2Instructor},
		{Subject: d.Period3Subject, Instructor: d.Period3Instructor},
		{Subject: d.Period4Subject, Instructor: d.Period4Instructor},
	}
}

// Validate checks the payload against the submission time now. The absence
// date must fall in (now, now + windowMonths].
func (d CreateRequestDTO) Validate(now time.Time, windowMonths int) (*Submission, error) {
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}
	v := validation.NewValidator().WithMismatches(d.Mismatches())

	studentID := validation.ParseID(v, "student_id", d.StudentID.String())

	absenceDate, dateErr := ParseAbsenceDate(d.AbsenceDate, now.Location())
	v.Field("absence_date", d.AbsenceDate).
		Required("公欠日付は必須です").
		Custom(func(interface{}) (string, bool) {
			if dateErr != nil {
				return "公欠日付の形式が不正です", false
			}
			return fmt.Sprintf("公欠日は現在日付から%dカ月先までの範囲で指定してください", windowMonths),
				WithinWindow(absenceDate, now, windowMonths)
		})

	v.Field("activity", d.Activity).Required("activityは必須です")
	v.Field("company_name", d.CompanyName).Required("会社名は必須です")

	for i, value := range []string{
		d.Period1Subject, d.Period1Instructor, d.Period2Subject, d.Period2Instructor,
		d.Period3Subject, d.Period3Instructor, d.Period4Subject, d.Period4Instructor,
	} {
		v.Field(periodFields[i], value)
	}
	periods := d.Periods()
	v.Assert("periods", periods.AnyFilled(), "少なくとも1つの授業情報セットが必要です")

	activity := Activity(d.Activity)
	if activity.IsOther() {
		v.Field("comment", d.Comment).
			Required(`activityが"その他"の場合、コメントは必須です`).
			MaxLength(CommentMaxLength, "コメントは100文字以内で入力してください")
	} else {
		v.Field("comment", d.Comment)
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	comment := d.Comment
	if comment != nil && *comment == "" {
		comment = nil
	}

	return &Submission{
		StudentID:   studentID,
		AbsenceDate: CalendarDate(absenceDate),
		Activity:    activity,
		CompanyName: d.CompanyName,
		Periods:     periods,
		Comment:     comment,
	}, nil
}

// ParseAbsenceDate accepts a calendar date, read in loc, or an RFC 3339 timestamp.
func ParseAbsenceDate(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func WithinWindow(date, now time.Time, months int) bool {
	return date.After(now) && !date.After(now.AddDate(0, months, 0))
}

type UpdateStatusDTO struct {
	validation.Decoded
	Status string `json:"status"`
}

// StatusUpdate is a validated PATCH /requests/{student_id}/{id}.
type StatusUpdate struct {
	Key    RequestKey
	Status Status
}

func ParseStatusUpdate(studentIDRaw, idRaw string, dto UpdateStatusDTO) (*StatusUpdate, error) {
	v := validation.NewValidator().WithMismatches(dto.Mismatches())
	studentID := validation.ParseID(v, "student_id", studentIDRaw)
	id := validation.ParseID(v, "id", idRaw)
	v.Field("status", dto.Status).
		Required("statusは必須です").
		OneOf([]string{string(StatusApproved), string(StatusRejected)}, "statusはapprovedまたはrejectedで指定してください")

	if err := v.Validate(); err != nil {
		return nil, err
	}

	status, _ := ParseStatus(dto.Status)
	return &StatusUpdate{
		Key:    RequestKey{StudentID: studentID, ID: id},
		Status: status,
	}, nil
}

func ParseRequestKey(studentIDRaw, idRaw string) (RequestKey, error) {
	v := validation.NewValidator()
	studentID := validation.ParseID(v, "student_id", studentIDRaw)
	id := validation.ParseID(v, "id", idRaw)
	if err := v.Validate(); err != nil {
		return RequestKey{}, err
	}
	return RequestKey{StudentID: studentID, ID: id}, nil
}

func ParseStudentID(raw string) (int64, error) {
	v := validation.NewValidator()
	studentID := validation.ParseID(v, "student_id", raw)
	if err := v.Validate(); err != nil {
		return 0, err
	}
	return studentID, nil
}

// DetailResponse is the GET /requests2/{student_id}/{id} body.
type DetailResponse struct {
	ID                int64   `json:"id"`
	StudentID         int64   `json:"student_id"`
	AbsenceDate       string  `json:"absence_date"`
	Activity          string  `json:"activity"`
	CompanyName       string  `json:"company_name"`
	Status            string  `json:"status"`
	Period1Subject    *string `json:"period1_subject"`
	Period1Instructor *string `json:"period1_instructor"`
	Period2Subject    *string `json:"period2_subject"`
	Period2Instructor *string `json:"period2_instructor"`
	Period3Subject    *string `json:"period3_subject"`
	Period3Instructor *string `json:"period3_instructor"`
	Period4Subject    *string `json:"period4_subject"`
	Period4Instructor *string `json:"period4_instructor"`
	Comment           *string `json:"comment"`
}

func (r *AbsenceRequest) ToDetailResponse() DetailResponse {
	return DetailResponse{
		ID:                r.ID,
		StudentID:         r.StudentID,
		AbsenceDate:       r.AbsenceDate.Format(DateLayout),
		Activity:          string(r.Activity),
		CompanyName:       r.CompanyName,
		Status:            string(r.Status),
		Period1Subject:    nullable(r.Periods[0].Subject),
		Period1Instructor: nullable(r.Periods[0].Instructor),
		Period2Subject:    nullable(r.Periods[1].Subject),
		Period2Instructor: nullable(r.Periods[1].Instructor),
		Period3Subject:    nullable(r.Periods[2].Subject),
		Period3Instructor: nullable(r.Periods[2].Instructor),
		Period4Subject:    nullable(r.Periods[3].Subject),
		Period4Instructor: nullable(r.Periods[3].Instructor),
		Comment:           r.Comment,
	}
}

// StaffListItem is one entry of GET /requests.
type StaffListItem struct {
	StudentID     int64     `json:"student_id"`
	ID            int64     `json:"id"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	StudentNumber *string   `json:"student_number"`
	Department    *string   `json:"department"`
	Grade         *int      `json:"grade"`
	Class         *int      `json:"class"`
	StudentName   string    `json:"student_name"`
}

// StudentListItem is one entry of GET /requests/{student_id}.
type StudentListItem struct {
	ID            int64   `json:"id"`
	Status        Status  `json:"status"`
	StudentNumber *string `json:"student_number"`
	Department    *string `json:"department"`
	Grade         *int    `json:"grade"`
	Class         *int    `json:"class"`
	StudentName   string  `json:"student_name"`
}

package absence

import "time"

// Request maps the registration_details table.
type Request struct {
	ID                int64     `gorm:"primaryKey"`
	StudentID         int64     `gorm:"column:student_id;not null;index"`
	AbsenceDate       time.Time `gorm:"column:absence_date;type:date;not null"`
	Activity          string    `gorm:"column:activity;type:text;not null"`
	CompanyName       string    `gorm:"column:company_name;type:text;not null"`
	Period1Subject    *string   `gorm:"column:time_class_information_subject_name"`
	Period1Instructor *string   `gorm:"column:time_class_information_instructor"`
	Period2Subject    *string   `gorm:"column:two_time_class_information_subject_name"`
	Period2Instructor *string   `gorm:"column:two_time_class_information_instructor"`
	Period3Subject    *string   `gorm:"column:three_time_class_information_subject_name"`
	Period3Instructor *string   `gorm:"column:three_time_class_information_instructor"`
	Period4Subject    *string   `gorm:"column:four_time_class_information_subject_name"`
	Period4Instructor *string   `gorm:"column:four_time_class_information_instructor"`
	Comment           *string   `gorm:"column:comment;type:text"`
	Status            string    `gorm:"column:status;not null;default:pending"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string {
	return "registration_details"
}

// StaffListRow is one line of the staff overview, joined with the owning student.
type StaffListRow struct {
	StudentID     int64     `db:"student_id"`
	ID            int64     `db:"id"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	StudentNumber *string   `db:"student_number"`
	Department    *string   `db:"department"`
	Grade         *int      `db:"grade"`
	Class         *int      `db:"class"`
	StudentName   string    `db:"student_name"`
}

// StudentListRow is one line of a single student's request list.
type StudentListRow struct {
	ID            int64   `db:"id"`
	Status        string  `db:"status"`
	StudentNumber *string `db:"student_number"`
	Department    *string `db:"department"`
	Grade         *int    `db:"grade"`
	Class         *int    `db:"class"`
	StudentName   string  `db:"student_name"`
}

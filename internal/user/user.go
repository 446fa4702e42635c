package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/user"
)

// Role is the account kind, stored as role_id.
type Role int

const (
	RoleStaff   Role = 1
	RoleStudent Role = 2
)

func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleStudent
}

func (r Role) String() string {
	switch r {
	case RoleStaff:
		return "staff"
	case RoleStudent:
		return "student"
	}
	return "unknown"
}

type Department string

const (
	DepartmentIS Department = "IS"
	DepartmentC2 Department = "C2"
	DepartmentPN Department = "PN"
	DepartmentAI Department = "AI"
	DepartmentL2 Department = "L2"
)

var Departments = []Department{DepartmentIS, DepartmentC2, DepartmentPN, DepartmentAI, DepartmentL2}

// StudentProfile holds the enrollment fields only student accounts carry.
type StudentProfile struct {
	StudentNumber string     `json:"student_number"`
	Department    Department `json:"department"`
	Grade         int        `json:"grade"`
	Class         int        `json:"class"`
}

type User struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"` // Never expose password hash
	Role         Role            `json:"role_id"`
	Student      *StudentProfile `json:"student,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent && u.Student != nil
}

var ErrNotFound = errors.New("user not found")

// NewUser builds an account from a validated registration and an already hashed password.
func NewUser(reg Registration, passwordHash string) *User {
	account := reg.Credentials()
	u := &User{
		Email:        account.Email,
		Name:         account.Name,
		PasswordHash: passwordHash,
		Role:         reg.Role(),
		CreatedAt:    time.Now(),
	}
	if student, ok := reg.(StudentRegistration); ok {
		profile := student.Profile
		u.Student = &profile
	}
	return u
}

func ToDataModel(u *User) *userDatamodel.User {
	dm := &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		RoleID:       int(u.Role),
		CreatedAt:    u.CreatedAt,
	}
	if u.IsStudent() {
		studentNumber := u.Student.StudentNumber
		department := string(u.Student.Department)
		grade := u.Student.Grade
		class := u.Student.Class
		dm.StudentNumber = &studentNumber
		dm.Department = &department
		dm.Grade = &grade
		dm.Class = &class
	}
	return dm
}

func FromDataModel(u *userDatamodel.User) *User {
	domainUser := &User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         Role(u.RoleID),
		CreatedAt:    u.CreatedAt,
	}
	if domainUser.Role == RoleStudent && u.StudentNumber != nil {
		profile := &StudentProfile{StudentNumber: *u.StudentNumber}
		if u.Department != nil {
			profile.Department = Department(*u.Department)
		}
		if u.Grade != nil {
			profile.Grade = *u.Grade
		}
		if u.Class != nil {
			profile.Class = *u.Class
		}
		domainUser.Student = profile
	}
	return domainUser
}

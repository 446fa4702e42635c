package user

import (
	"time"

	"github.com/frahmantamala/absence-request/internal/core/common/validation"
)

// RegisterDTO is the raw /auth/register payload.
type RegisterDTO struct {
	validation.Decoded
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Name          string  `json:"name"`
	RoleID        *int    `json:"role_id"`
	StudentNumber *string `json:"student_number"`
	Department    *string `json:"department"`
	Grade         *int    `json:"grade"`
	Class         *int    `json:"class"`
}

// Account is the part of a registration common to every role.
type Account struct {
	Email    string
	Password string
	Name     string
}

// Registration is either a StaffRegistration or a StudentRegistration.
type Registration interface {
	Credentials() Account
	Role() Role
}

type StaffRegistration struct {
	Account
}

func (r StaffRegistration) Credentials() Account { return r.Account }
func (r StaffRegistration) Role() Role           { return RoleStaff }

type StudentRegistration struct {
	Account
	Profile StudentProfile
}

func (r StudentRegistration) Credentials() Account { return r.Account }
func (r StudentRegistration) Role() Role           { return RoleStudent }

// Validate checks every field and returns the registration variant matching role_id.
func (d RegisterDTO) Validate() (Registration, error) {
	v := validation.NewValidator().WithMismatches(d.Mismatches())

	v.Field("email", d.Email).
		Required("emailは必須です").
		Email("有効なメールアドレスを入力してください").
		Matches(validation.CompiledPatterns.StrictEmail, "メールアドレスの形式が不正です")
	validation.Password(v.Field("password", d.Password).Required("passwordは必須です"))
	v.Field("name", d.Name).Required("名前は必須です")
	v.Field("role_id", d.RoleID).
		Required("role_idは必須です").
		IntRange(int64(RoleStaff), int64(RoleStudent), "role_idは1または2で指定してください")

	isStudent := d.RoleID != nil && Role(*d.RoleID) == RoleStudent
	if isStudent {
		v.Field("student_number", d.StudentNumber).
			Required("学籍番号は必須です").
			Length(9, 9, "学籍番号は9文字固定です").
			Matches(validation.CompiledPatterns.StudentNumber, "学籍番号はA012B3456の形式で入力してください")
		v.Field("department", d.Department).
			Required("学科は必須です").
			OneOf(departmentNames(), "有効な学科を選択してください")
		v.Field("grade", d.Grade).
			Required("学年は必須です").
			IntRange(1, 4, "学年は1～4の値で指定してください")
		v.Field("class", d.Class).
			Required("クラスは必須です").
			IntRange(1, 5, "クラスは1～5の値で指定してください")
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	account := Account{Email: d.Email, Password: d.Password, Name: d.Name}
	if !isStudent {
		return StaffRegistration{Account: account}, nil
	}
	return StudentRegistration{
		Account: account,
		Profile: StudentProfile{
			StudentNumber: *d.StudentNumber,
			Department:    Department(*d.Department),
			Grade:         *d.Grade,
			Class:         *d.Class,
		},
	}, nil
}

func departmentNames() []string {
	names := make([]string, len(Departments))
	for i, d := range Departments {
		names[i] = string(d)
	}
	return names
}

// UserResponse is the public view of an account; student fields are null for staff.
type UserResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	RoleID        int       `json:"role_id"`
	StudentNumber *string   `json:"student_number"`
	Department    *string   `json:"department"`
	Grade         *int      `json:"grade"`
	Class         *int      `json:"class"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	dm := ToDataModel(u)
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		RoleID:        int(u.Role),
		StudentNumber: dm.StudentNumber,
		Department:    dm.Department,
		Grade:         dm.Grade,
		Class:         dm.Class,
		CreatedAt:     u.CreatedAt,
	}
}

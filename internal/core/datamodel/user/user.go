package user

import "time"

// User maps the users table. Student columns are NULL for staff accounts.
type User struct {
	ID            int64     `gorm:"primaryKey"`
	Email         string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	Name          string    `gorm:"column:name;not null"`
	RoleID        int       `gorm:"column:role_id;not null"`
	StudentNumber *string   `gorm:"column:student_number"`
	Department    *string   `gorm:"column:department"`
	Grade         *int      `gorm:"column:grade"`
	Class         *int      `gorm:"column:class"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

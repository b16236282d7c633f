package staff

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User types
const (
	UserTypeTeaching    = "teaching"
	UserTypeNonTeaching = "non_teaching"
)

// Roles
const (
	RoleTeacher          = "teacher"
	RoleHOD              = "hod"
	RolePrincipal        = "principal"
	RoleSuperintendent   = "superintendent"
	RoleTeachingAdmin    = "teaching_admin"
	RoleNonTeachingAdmin = "non_teaching_admin"
)

type Staff struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"column:username;size:150;not null;uniqueIndex:uq_staff_username"`
	Password     string     `gorm:"column:password;type:text;not null"`
	FirstName    string     `gorm:"column:first_name;size:150"`
	LastName     string     `gorm:"column:last_name;size:150"`
	Email        string     `gorm:"column:email;size:254"`
	PENNumber    *string    `gorm:"column:pen_number;size:20;uniqueIndex:uq_staff_pen_number"`
	Designation  string     `gorm:"column:designation;size:100;not null"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid"`
	UserType     string     `gorm:"column:user_type;size:20;not null;default:teaching"`
	Role         string     `gorm:"column:role;size:20;not null;default:teacher"`
	PhoneNumber  string     `gorm:"column:phone_number;size:15"`
	DateJoined   time.Time  `gorm:"column:date_joined;type:date;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Staff) TableName() string {
	return "staff"
}

// FullName joins first and last name, trimmed, matching how names render in
// the admin listings.
func (s Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
	Code string    `gorm:"column:code"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}

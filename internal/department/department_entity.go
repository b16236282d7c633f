package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex:uq_department_name"`
	Code      string    `gorm:"column:code;size:10;not null;uniqueIndex:uq_department_code"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentWithCount carries the staff headcount for admin listings.
type DepartmentWithCount struct {
	Department
	StaffCount int64 `gorm:"column:staff_count"`
}

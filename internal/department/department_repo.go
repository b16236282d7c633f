package department

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]DepartmentWithCount, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error
	ClearStaffReferences(ctx context.Context, id string) error
	CountStaff(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the caller's
// transaction, so detaching staff and deleting the row commit together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Context forces a statement clone so the tx never leaks into r.db.
	session := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]DepartmentWithCount, error) {
	var depts []DepartmentWithCount
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Select("departments.*, COUNT(staff.id) AS staff_count").
		Joins("LEFT JOIN staff ON staff.department_id = departments.id").
		Group("departments.id").
		Order("departments.name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Department{}, "id = ?", id).Error
}

// ClearStaffReferences nulls department_id on staff rows before the
// department row goes away. Staff are never cascade-deleted with their
// department.
func (r *repository) ClearStaffReferences(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Table("staff").
		Where("department_id = ?", id).
		Update("department_id", nil).Error
}

func (r *repository) CountStaff(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("staff").
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}

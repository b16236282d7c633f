package staff

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Staff) error
	FindAll(ctx context.Context) ([]Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	FindByUsername(ctx context.Context, username string) (*Staff, error)
	FindOptions(ctx context.Context) ([]Staff, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id string) error
	DeleteLeaveApplications(ctx context.Context, staffID string) error
	DeleteLeaveBalances(ctx context.Context, staffID string) error
	ClearApproverReferences(ctx context.Context, staffID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the caller's
// transaction, keeping the delete cascade atomic.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Context forces a statement clone so the tx never leaks into r.db.
	session := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Staff, error) {
	var members []Staff
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("designation ASC, first_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).
		First(&s, "username = ?", username).Error
	return &s, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Staff, error) {
	var members []Staff
	err := r.db.WithContext(ctx).
		Select("id", "first_name", "last_name").
		Order("first_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Staff{}, "id = ?", id).Error
}

// DeleteLeaveApplications removes the applications the staff member owns.
// Applications where they only acted as approver are handled by
// ClearApproverReferences instead.
func (r *repository) DeleteLeaveApplications(ctx context.Context, staffID string) error {
	return r.db.WithContext(ctx).
		Table("leave_applications").
		Where("applicant_id = ?", staffID).
		Delete(nil).Error
}

func (r *repository) DeleteLeaveBalances(ctx context.Context, staffID string) error {
	return r.db.WithContext(ctx).
		Table("leave_balances").
		Where("staff_id = ?", staffID).
		Delete(nil).Error
}

func (r *repository) ClearApproverReferences(ctx context.Context, staffID string) error {
	if err := r.db.WithContext(ctx).
		Table("leave_applications").
		Where("approved_by_hod_id = ?", staffID).
		Update("approved_by_hod_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Table("leave_applications").
		Where("approved_by_principal_id = ?", staffID).
		Update("approved_by_principal_id", nil).Error
}

package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveApplication, int64, error)
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	FindByApplicant(ctx context.Context, applicantID string) ([]LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the caller's
// transaction instead of the connection pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Context forces a statement clone so the tx never leaks into r.db.
	session := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveApplication, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveApplication{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		q = q.Where("leave_type = ?", filter.LeaveType)
	}
	if filter.ApplicantID != "" {
		q = q.Where("applicant_id = ?", filter.ApplicantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []LeaveApplication
	err := q.
		Preload("Applicant").
		Order("applied_date DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&apps).Error
	return apps, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByApplicant(ctx context.Context, applicantID string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("applied_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	// Omit the preloaded applicant so decision updates never write to staff.
	return r.db.WithContext(ctx).Omit("Applicant").Save(l).Error
}

package leavebalance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	Find(ctx context.Context, staffID, leaveType, academicYear string) (*LeaveBalance, error)
	// FindForUpdate takes a row lock so concurrent debits serialize per
	// (staff, leave_type, academic_year) key.
	FindForUpdate(ctx context.Context, staffID, leaveType, academicYear string) (*LeaveBalance, error)
	FindByStaff(ctx context.Context, staffID string) ([]LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the caller's
// transaction, so FindForUpdate locks are held until that transaction ends.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Context forces a statement clone so the tx never leaks into r.db.
	session := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Find(ctx context.Context, staffID, leaveType, academicYear string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Where("leave_type = ?", leaveType).
		Where("academic_year = ?", academicYear).
		First(&b).Error
	return &b, err
}

func (r *repository) FindForUpdate(ctx context.Context, staffID, leaveType, academicYear string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("staff_id = ?", staffID).
		Where("leave_type = ?", leaveType).
		Where("academic_year = ?", academicYear).
		First(&b).Error
	return &b, err
}

func (r *repository) FindByStaff(ctx context.Context, staffID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("academic_year DESC, leave_type ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

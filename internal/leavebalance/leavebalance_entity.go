package leavebalance

import (
	"math"
	"time"

	leavebalanceerrors "github.com/Yaseenhassan/college-leave-app/internal/leavebalance/errors"

	"github.com/google/uuid"
)

type LeaveBalance struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID      uuid.UUID `gorm:"column:staff_id;type:uuid;not null;uniqueIndex:uq_leave_balance_staff_type_year"`
	LeaveType    string    `gorm:"column:leave_type;size:20;not null;uniqueIndex:uq_leave_balance_staff_type_year"`
	BalanceDays  float64   `gorm:"column:balance_days;type:numeric(5,2);not null;default:0"`
	AcademicYear string    `gorm:"column:academic_year;size:9;not null;uniqueIndex:uq_leave_balance_staff_type_year"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// ApplyDelta mutates the balance by delta days, rounded to two decimals. The
// floor is zero: a delta that would go below it leaves the balance unchanged
// and returns ErrInsufficientBalance.
func (b *LeaveBalance) ApplyDelta(delta float64) error {
	next := round2(b.BalanceDays + delta)
	if next < 0 {
		return leavebalanceerrors.ErrInsufficientBalance
	}
	b.BalanceDays = next
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

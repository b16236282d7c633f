// Package domain holds the enumerations shared between the leave workflow
// and the balance ledger.
package domain

// Leave types. Duty leave is non-deductible: approving it never touches the
// balance ledger.
const (
	LeaveTypeSick     = "sick"
	LeaveTypeCasual   = "casual"
	LeaveTypeVacation = "vacation"
	LeaveTypePersonal = "personal"
	LeaveTypeDuty     = "duty"
)

// LeaveTypes lists every leave type in a stable order.
var LeaveTypes = []string{
	LeaveTypeSick,
	LeaveTypeCasual,
	LeaveTypeVacation,
	LeaveTypePersonal,
	LeaveTypeDuty,
}

func ValidLeaveType(s string) bool {
	for _, t := range LeaveTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Deductible reports whether approving a leave of this type debits the
// applicant's balance.
func Deductible(leaveType string) bool {
	return leaveType != LeaveTypeDuty
}

package leavebalance

type InitializeBalanceRequest struct {
	StaffID      string  `json:"staff_id" binding:"required,uuid"`
	LeaveType    string  `json:"leave_type" binding:"required,oneof=sick casual vacation personal duty"`
	AcademicYear string  `json:"academic_year" binding:"required"`
	InitialDays  float64 `json:"initial_days"`
}

type AdjustBalanceRequest struct {
	StaffID      string  `json:"staff_id" binding:"required,uuid"`
	LeaveType    string  `json:"leave_type" binding:"required,oneof=sick casual vacation personal duty"`
	AcademicYear string  `json:"academic_year" binding:"required"`
	DeltaDays    float64 `json:"delta_days" binding:"required"`
}

type BalanceResponse struct {
	ID           string  `json:"id"`
	StaffID      string  `json:"staff_id"`
	LeaveType    string  `json:"leave_type"`
	BalanceDays  float64 `json:"balance_days"`
	AcademicYear string  `json:"academic_year"`
}

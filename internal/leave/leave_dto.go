package leave

type CreateLeaveRequest struct {
	LeaveType string `form:"leave_type" json:"leave_type" binding:"required,oneof=sick casual vacation personal duty"`
	StartDate string `form:"start_date" json:"start_date" binding:"required"`
	EndDate   string `form:"end_date" json:"end_date" binding:"required"`
	Session   string `form:"session" json:"session" binding:"omitempty,oneof=forenoon afternoon full_day"`
	Reason    string `form:"reason" json:"reason"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Comments string `json:"comments"`
}

// ListFilter mirrors the admin changelist filters.
type ListFilter struct {
	Status      string
	LeaveType   string
	ApplicantID string
	Page        int
	PageSize    int
}

type LeaveResponse struct {
	ID                 string  `json:"id"`
	Reference          string  `json:"reference"`
	ApplicantID        string  `json:"applicant_id"`
	ApplicantName      string  `json:"applicant_name,omitempty"`
	LeaveType          string  `json:"leave_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Session            string  `json:"session"`
	DurationDays       int     `json:"duration_days"`
	Reason             string  `json:"reason,omitempty"`
	AppliedDate        string  `json:"applied_date"`
	SupportingDocument *string `json:"supporting_document,omitempty"`
	Status             string  `json:"status"`

	ApprovedByHOD         *string `json:"approved_by_hod,omitempty"`
	HODApprovalDate       *string `json:"hod_approval_date,omitempty"`
	HODComments           string  `json:"hod_comments,omitempty"`
	ApprovedByPrincipal   *string `json:"approved_by_principal,omitempty"`
	PrincipalApprovalDate *string `json:"principal_approval_date,omitempty"`
	PrincipalComments     string  `json:"principal_comments,omitempty"`
}

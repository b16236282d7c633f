package leave

import (
	"time"

	"github.com/google/uuid"
)

// Statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Sessions
const (
	SessionForenoon  = "forenoon"
	SessionAfternoon = "afternoon"
	SessionFullDay   = "full_day"
)

func ValidSession(s string) bool {
	switch s {
	case SessionForenoon, SessionAfternoon, SessionFullDay:
		return true
	}
	return false
}

type LeaveApplication struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Reference   string    `gorm:"column:reference;size:20;not null;uniqueIndex:uq_leave_application_reference"`
	ApplicantID uuid.UUID `gorm:"column:applicant_id;type:uuid;not null;index:idx_leave_applications_applicant"`

	LeaveType string    `gorm:"column:leave_type;size:20;not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	Session   string    `gorm:"column:session;size:20;not null;default:full_day"`
	Reason    string    `gorm:"column:reason;type:text"`

	AppliedDate        time.Time `gorm:"column:applied_date;autoCreateTime"`
	SupportingDocument *string   `gorm:"column:supporting_document;size:255"`

	Status string `gorm:"column:status;size:20;not null;default:pending;index:idx_leave_applications_status"`

	ApprovedByHODID       *uuid.UUID `gorm:"column:approved_by_hod_id;type:uuid"`
	ApprovedByPrincipalID *uuid.UUID `gorm:"column:approved_by_principal_id;type:uuid"`
	HODApprovalDate       *time.Time `gorm:"column:hod_approval_date"`
	PrincipalApprovalDate *time.Time `gorm:"column:principal_approval_date"`

	HODComments       string `gorm:"column:hod_comments;type:text"`
	PrincipalComments string `gorm:"column:principal_comments;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Applicant *ApplicantRef `gorm:"foreignKey:ApplicantID;references:ID"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// Duration counts days inclusive of both the start and end date.
func (l LeaveApplication) Duration() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

type ApplicantRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (ApplicantRef) TableName() string {
	return "staff"
}

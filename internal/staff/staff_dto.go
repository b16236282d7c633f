package staff

type CreateStaffRequest struct {
	Username     string  `json:"username" binding:"required,max=150"`
	Password     string  `json:"password" binding:"required,min=8"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email" binding:"omitempty,email"`
	PENNumber    *string `json:"pen_number"`
	Designation  string  `json:"designation" binding:"required,max=100"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	UserType     string  `json:"user_type" binding:"required,oneof=teaching non_teaching"`
	Role         string  `json:"role" binding:"required,oneof=teacher hod principal superintendent teaching_admin non_teaching_admin"`
	PhoneNumber  string  `json:"phone_number" binding:"omitempty,max=15"`
}

type UpdateStaffRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email" binding:"omitempty,email"`
	PENNumber    *string `json:"pen_number"`
	Designation  string  `json:"designation" binding:"required,max=100"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	UserType     string  `json:"user_type" binding:"required,oneof=teaching non_teaching"`
	Role         string  `json:"role" binding:"required,oneof=teacher hod principal superintendent teaching_admin non_teaching_admin"`
	PhoneNumber  string  `json:"phone_number" binding:"omitempty,max=15"`
}

type StaffResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email,omitempty"`
	PENNumber      *string `json:"pen_number,omitempty"`
	Designation    string  `json:"designation"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	UserType       string  `json:"user_type"`
	Role           string  `json:"role"`
	PhoneNumber    string  `json:"phone_number,omitempty"`
	DateJoined     string  `json:"date_joined"`
}

// StaffOption is the trimmed row the approver pickers consume.
type StaffOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

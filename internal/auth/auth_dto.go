package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email,omitempty"`
	Designation  string  `json:"designation"`
	DepartmentID *string `json:"department_id,omitempty"`
	UserType     string  `json:"user_type"`
	Role         string  `json:"role"`
}

package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=10"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=10"`
}

type DepartmentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	StaffCount int64  `json:"staff_count"`
}

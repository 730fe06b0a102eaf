package employee

type CreateEmployeeRequest struct {
	Matricule   string `json:"matricule" binding:"omitempty,max=50"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	GradeID     string `json:"grade_id" binding:"required,uuid"`
	WorkplaceID string `json:"workplace_id" binding:"omitempty,uuid"`
	HireDate    string `json:"hire_date"`
}

type UpdateEmployeeRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,max=100"`
	LastName       *string `json:"last_name" binding:"omitempty,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	GradeID        *string `json:"grade_id" binding:"omitempty,uuid"`
	WorkplaceID    *string `json:"workplace_id" binding:"omitempty,uuid"`
	ClearWorkplace bool    `json:"clear_workplace"`
	HireDate       *string `json:"hire_date"`
}

type ListEmployeesRequest struct {
	Search      string `form:"q"`
	WorkplaceID string `form:"workplace_id" binding:"omitempty,uuid"`
	GradeID     string `form:"grade_id" binding:"omitempty,uuid"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// EmployeeFilter is the repository-level form of ListEmployeesRequest.
type EmployeeFilter struct {
	Search      string
	WorkplaceID string
	GradeID     string
	Limit       int
	Offset      int
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	Matricule   string `json:"matricule"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	GradeID     string `json:"grade_id"`
	WorkplaceID string `json:"workplace_id,omitempty"`
	HireDate    string `json:"hire_date,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

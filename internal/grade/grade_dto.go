package grade

import "github.com/shopspring/decimal"

type CreateGradeRequest struct {
	Label       string           `json:"label" binding:"required,max=100"`
	BaseSalary  *decimal.Decimal `json:"base_salary" binding:"required"`
	Description string           `json:"description"`
}

type UpdateGradeRequest struct {
	Label       *string          `json:"label" binding:"omitempty,max=100"`
	BaseSalary  *decimal.Decimal `json:"base_salary"`
	Description *string          `json:"description"`
}

func (r UpdateGradeRequest) Patch() GradePatch {
	return GradePatch{
		Label:       r.Label,
		BaseSalary:  r.BaseSalary,
		Description: r.Description,
	}
}

type GradeResponse struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

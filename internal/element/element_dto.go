package element

import "github.com/shopspring/decimal"

type CreateElementRequest struct {
	Name          string           `json:"name" binding:"required,max=255"`
	Kind          string           `json:"kind" binding:"required,oneof=GAIN DEDUCTION gain deduction"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
	ZoneSensitive bool             `json:"zone_sensitive"`
}

type UpdateElementRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=255"`
	Kind          *string          `json:"kind" binding:"omitempty,oneof=GAIN DEDUCTION gain deduction"`
	Amount        *decimal.Decimal `json:"amount"`
	ClearAmount   bool             `json:"clear_amount"`
	Description   *string          `json:"description"`
	ZoneSensitive *bool            `json:"zone_sensitive"`
}

func (r UpdateElementRequest) Patch() ElementPatch {
	return ElementPatch{
		Name:          r.Name,
		Kind:          r.Kind,
		Amount:        r.Amount,
		ClearAmount:   r.ClearAmount,
		Description:   r.Description,
		ZoneSensitive: r.ZoneSensitive,
	}
}

type ElementResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Kind          string           `json:"kind"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description,omitempty"`
	ZoneSensitive bool             `json:"zone_sensitive"`
	CreatedAt     string           `json:"created_at,omitempty"`
	UpdatedAt     string           `json:"updated_at,omitempty"`
}

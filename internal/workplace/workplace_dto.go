package workplace

type CreateWorkplaceRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Province string `json:"province" binding:"max=100"`
	Zone     string `json:"zone" binding:"required"`
}

type UpdateWorkplaceRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Province *string `json:"province" binding:"omitempty,max=100"`
	Zone     *string `json:"zone"`
}

func (r UpdateWorkplaceRequest) Patch() WorkplacePatch {
	return WorkplacePatch{Name: r.Name, Province: r.Province, Zone: r.Zone}
}

type WorkplaceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Province  string `json:"province"`
	Zone      string `json:"zone"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

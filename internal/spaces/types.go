package spaces

type CreateSpaceReq struct {
	Name        string  `json:"name"`
	Size        int     `json:"size"`
	Description *string `json:"description,omitempty"`
}

type UpdateSpaceReq struct {
	Name        *string `json:"name,omitempty"`
	Size        *int    `json:"size,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ListResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Data  any   `json:"data"`
}

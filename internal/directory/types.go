package directory

import "github.com/google/uuid"

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ActivateReq struct {
	Password string `json:"password"`
}

type EmployeeInvite struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
}

type CreateCompanyReq struct {
	CompanyName string         `json:"company_name"`
	About       *string        `json:"about,omitempty"`
	Manager     EmployeeInvite `json:"manager"`
}

type CreateCompanyResponse struct {
	CompID uuid.UUID `json:"comp_id"`
	// ActivationToken lets the invited manager set an initial password.
	ActivationToken string `json:"activation_token"`
}

type UpdateCompanyReq struct {
	CompanyName *string `json:"company_name,omitempty"`
	About       *string `json:"about,omitempty"`
}

type InviteEmployeeResponse struct {
	EmpID           uuid.UUID `json:"emp_id"`
	ActivationToken string    `json:"activation_token"`
}

type UpdateEmployeeReq struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
}

type ListResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Data  any   `json:"data"`
}

package auth

import "github.com/trezcool/academia/core"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAccount contains the registration form fields, plus role-specific extras
// the backend ignores for the other portal.
type NewAccount struct {
	Name            string `json:"name" validate:"required"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`

	GroupID      int `json:"group_id,omitempty"`      // student portal
	DisciplineID int `json:"discipline_id,omitempty"` // teacher portal
}

func (na *NewAccount) Validate() error {
	na.Name = core.CleanString(na.Name)
	na.FirstName = core.CleanString(na.FirstName)
	na.LastName = core.CleanString(na.LastName)
	na.Email = core.CleanString(na.Email, true /* lower */)

	if err := core.Validate.Struct(na); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

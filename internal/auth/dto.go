package auth

import (
	"github.com/frahmantamala/absence-request/internal/core/common/validation"
	"github.com/frahmantamala/absence-request/internal/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	validation.Decoded
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator().WithMismatches(d.Mismatches())

	v.Field("email", d.Email).
		Required("emailは必須です").
		Email("有効なメールアドレスを入力してください")
	validation.Password(v.Field("password", d.Password).Required("passwordは必須です"))

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type LoginResponse struct {
	User user.UserResponse `json:"user"`
}

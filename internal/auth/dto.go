package auth

import "github.com/medstock/medstock-backend/internal/operators"

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the login/registration result handed to clients.
type Session struct {
	Token    string            `json:"token"`
	Operator operators.Profile `json:"operator"`
}

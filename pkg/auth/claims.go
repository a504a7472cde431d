package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medstock/medstock-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	OperatorID uuid.UUID
	Name       string
	Role       enums.OperatorRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	OperatorID uuid.UUID          `json:"user_id"`
	Name       string             `json:"name"`
	Role       enums.OperatorRole `json:"role"`
	jwt.RegisteredClaims
}

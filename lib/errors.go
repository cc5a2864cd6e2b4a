package lib

import "errors"

// Failure taxonomy shared by services and controllers. Controllers map these
// onto HTTP statuses with errors.Is; the model layer wraps them with
// fmt.Errorf and %w where extra context helps.
var (
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrTokenExpired       = errors.New("verification token expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrGatewayTimeout     = errors.New("gateway timeout")
	ErrValidation         = errors.New("validation error")
)

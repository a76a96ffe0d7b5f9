package transport

import "github.com/piar/gateway/domain"

// MessageResponse is used for confirmations and client errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries the message of a downstream failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	Usuario domain.User `json:"usuario"`
}

func NewLoginResponse(session *domain.Session) LoginResponse {
	return LoginResponse{Token: session.Token, Usuario: session.User}
}

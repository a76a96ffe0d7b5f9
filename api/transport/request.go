package transport

import (
	"bytes"
	"encoding/json"

	"github.com/piar/gateway/domain"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Credential() domain.Credential {
	return domain.Credential{Username: r.Username, Password: r.Password}
}

// ExecuteRequest is the body of POST /execute-sp. Params stays raw until Call so a missing
// or non-array value can be told apart from an empty list.
type ExecuteRequest struct {
	SpName string          `json:"spName"`
	Params json.RawMessage `json:"params"`
}

// Call converts the request into a domain call, enforcing that params is a JSON array.
func (r ExecuteRequest) Call() (domain.Call, error) {
	raw := bytes.TrimSpace(r.Params)
	if r.SpName == "" || len(raw) == 0 || raw[0] != '[' {
		return domain.Call{}, domain.ErrInvalidCall
	}
	args := []any{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return domain.Call{}, domain.ErrInvalidCall
	}
	return domain.Call{Name: r.SpName, Args: args}, nil
}

package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piar/gateway/domain"
)

func TestExecuteRequestCall(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    domain.Call
	}{
		{
			name: "procedure with mixed params",
			body: `{"spName":"sp_registrar_usuario","params":["Carlos","Gómez","carlos@correo.com","12345",2,null]}`,
			want: domain.Call{Name: "sp_registrar_usuario", Args: []any{"Carlos", "Gómez", "carlos@correo.com", "12345", float64(2), nil}},
		},
		{
			name: "empty params",
			body: `{"spName":"consultar_usuarios","params":[]}`,
			want: domain.Call{Name: "consultar_usuarios", Args: []any{}},
		},
		{name: "missing params", body: `{"spName":"sp_x"}`, wantErr: true},
		{name: "null params", body: `{"spName":"sp_x","params":null}`, wantErr: true},
		{name: "object params", body: `{"spName":"sp_x","params":{"a":1}}`, wantErr: true},
		{name: "string params", body: `{"spName":"sp_x","params":"[1]"}`, wantErr: true},
		{name: "missing name", body: `{"params":[]}`, wantErr: true},
		{name: "empty name", body: `{"spName":"","params":[]}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ExecuteRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			call, err := req.Call()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCall)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, call)
		})
	}
}

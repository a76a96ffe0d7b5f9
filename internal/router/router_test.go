package router

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/piar/gateway/api/handler"
	"github.com/piar/gateway/domain"
	"github.com/piar/gateway/internal/metrics"
	"github.com/piar/gateway/internal/middleware"
	"github.com/piar/gateway/pkg/httpcontext"
	"github.com/piar/gateway/pkg/token"
	authUC "github.com/piar/gateway/usecase/auth"
	callUC "github.com/piar/gateway/usecase/call"
)

type memoryUsers struct{}

func (memoryUsers) FindActiveByCredential(_ context.Context, cred domain.Credential) (*domain.User, error) {
	if cred.Username == "admin@piar.com" && cred.Password == "admin" {
		return &domain.User{ID: 1, FirstName: "Admin", LastName: "Piar", Email: "admin@piar.com"}, nil
	}
	return nil, domain.ErrUserNotFound
}

type countingCalls struct {
	calls int
}

func (c *countingCalls) CallProcedure(context.Context, string, []any) error {
	c.calls++
	return nil
}

func (c *countingCalls) SelectFunction(context.Context, string, []any) ([]map[string]any, error) {
	c.calls++
	return []map[string]any{{"usuario_id": 1}}, nil
}

type gateway struct {
	handler fasthttp.RequestHandler
	calls   *countingCalls
	metrics *metrics.Metrics
}

func newGateway(secret string) *gateway {
	tokens := token.NewManager(secret)
	m := metrics.New()
	calls := &countingCalls{}
	adapter := httpcontext.NewAdapter(time.Second)

	r := New(Handlers{
		Auth:    apiHandler.NewAuthHandler(authUC.New(memoryUsers{}, tokens, m, nil), adapter, nil),
		Execute: apiHandler.NewExecuteHandler(callUC.New(calls, m, nil), adapter, nil),
		Metrics: m.Handler(),
	}, middleware.JWTAuth(tokens, nil))

	return &gateway{handler: r.Handler, calls: calls, metrics: m}
}

func (g *gateway) do(method, path, body, authorization string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	if authorization != "" {
		ctx.Request.Header.Set(fasthttp.HeaderAuthorization, authorization)
	}
	g.handler(ctx)
	return ctx
}

func (g *gateway) login(t *testing.T) string {
	t.Helper()
	ctx := g.do(fasthttp.MethodPost, "/login", `{"username":"admin@piar.com","password":"admin"}`, "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestExecuteRequiresToken(t *testing.T) {
	g := newGateway("secret")

	ctx := g.do(fasthttp.MethodPost, "/execute-sp", `{"spName":"sp_x","params":[]}`, "")

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	assert.Zero(t, g.calls.calls)
}

func TestExecuteRejectsForeignToken(t *testing.T) {
	foreign := newGateway("other-secret")
	raw := foreign.login(t)

	g := newGateway("secret")
	ctx := g.do(fasthttp.MethodPost, "/execute-sp", `{"spName":"sp_x","params":[]}`, "Bearer "+raw)

	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	assert.Zero(t, g.calls.calls)
}

func TestLoginThenExecute(t *testing.T) {
	g := newGateway("secret")
	raw := g.login(t)

	ctx := g.do(fasthttp.MethodPost, "/execute-sp", `{"spName":"sp_registrar_usuario","params":["Ana"]}`, "Bearer "+raw)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"sp_registrar_usuario ejecutado correctamente"}`, string(ctx.Response.Body()))

	ctx = g.do(fasthttp.MethodPost, "/execute-sp", `{"spName":"consultar_usuarios","params":[]}`, "Bearer "+raw)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `[{"usuario_id":1}]`, string(ctx.Response.Body()))

	assert.Equal(t, 2, g.calls.calls)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	g := newGateway("secret")

	assert.Equal(t, fasthttp.StatusNotFound, g.do(fasthttp.MethodGet, "/nope", "", "").Response.StatusCode())
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, g.do(fasthttp.MethodGet, "/login", "", "").Response.StatusCode())
}

func TestMetricsRoute(t *testing.T) {
	g := newGateway("secret")
	g.login(t)

	ctx := g.do(fasthttp.MethodGet, "/metrics", "", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `gateway_logins_total{outcome="ok"} 1`)
}

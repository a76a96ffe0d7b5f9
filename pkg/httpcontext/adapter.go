package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/piar/gateway/pkg/logger"
	"github.com/piar/gateway/pkg/token"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyClaims     Key = "claims"
)

// UserValueClaims is the fasthttp user value under which the auth middleware stores the
// verified token claims.
const UserValueClaims = "claims"

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
// The context is not tied to the client connection: a disconnect does not cancel work
// already sent to the database.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := RequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	if claims, ok := ctx.UserValue(UserValueClaims).(*token.Claims); ok {
		stdCtx = context.WithValue(stdCtx, KeyClaims, claims)
	}

	return stdCtx, cancel
}

// RequestID returns the request id of ctx, creating one and echoing it in the
// X-Request-ID response header on first use.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id := string(ctx.Response.Header.Peek("X-Request-ID")); id != "" {
		return id
	}
	id := string(ctx.Request.Header.Peek("X-Request-ID"))
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	ctx.Response.Header.Set("X-Request-ID", id)
	return id
}

// ClaimsFromContext returns the verified token claims attached to a request context.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	if ctx == nil {
		return nil, false
	}
	claims, ok := ctx.Value(KeyClaims).(*token.Claims)
	return claims, ok
}

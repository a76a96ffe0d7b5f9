package middleware

import (
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/piar/gateway/pkg/httpcontext"
	"github.com/piar/gateway/pkg/token"
)

// TokenVerifier decides whether an Authorization header grants access.
type TokenVerifier interface {
	Verify(authorization string) (*token.Claims, error)
}

// JWTAuth gates next behind a bearer token: 401 when no token is presented, 403 when it does
// not verify. Neither response has a body and next is not invoked.
func JWTAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			claims, err := verifier.Verify(string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)))
			if err != nil {
				if errors.Is(err, token.ErrMissingToken) {
					ctx.SetStatusCode(fasthttp.StatusUnauthorized)
					return
				}
				logger.Warn("invalid jwt token",
					zap.String("request_id", httpcontext.RequestID(ctx)),
					zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusForbidden)
				return
			}

			ctx.SetUserValue(httpcontext.UserValueClaims, claims)
			next(ctx)
		}
	}
}

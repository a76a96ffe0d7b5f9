package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/piar/gateway/api/transport"
	"github.com/piar/gateway/pkg/httpcontext"
)

// Recovery converts a panic in next into a 500 response.
func Recovery(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						zap.String("request_id", httpcontext.RequestID(ctx)),
						zap.String("path", string(ctx.Path())),
						zap.Any("panic", r),
						zap.Stack("stack"))
					body, _ := json.Marshal(transport.ErrorResponse{Error: fmt.Sprint(r)})
					ctx.ResetBody()
					ctx.Response.Header.SetContentType("application/json")
					ctx.SetStatusCode(fasthttp.StatusInternalServerError)
					ctx.SetBody(body)
				}
			}()
			next(ctx)
		}
	}
}

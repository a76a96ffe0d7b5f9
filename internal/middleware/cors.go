package middleware

import (
	"github.com/valyala/fasthttp"
)

// CORS allows cross-origin calls from the configured origins. Preflight requests are
// answered here with 204 and never reach the router. A "*" entry allows any origin.
func CORS(allowedOrigins []string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = struct{}{}
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek(fasthttp.HeaderOrigin))
			if origin != "" {
				if _, ok := origins[origin]; ok || allowAll {
					h := &ctx.Response.Header
					h.Set(fasthttp.HeaderAccessControlAllowOrigin, origin)
					h.Set(fasthttp.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
					h.Set(fasthttp.HeaderAccessControlAllowHeaders, "Authorization, Content-Type, X-Request-ID")
					h.Set(fasthttp.HeaderAccessControlMaxAge, "86400")
					h.Add(fasthttp.HeaderVary, fasthttp.HeaderOrigin)
				}
			}

			if ctx.IsOptions() {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}
			next(ctx)
		}
	}
}

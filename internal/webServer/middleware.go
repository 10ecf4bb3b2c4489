package routing

import (
	"net/http"
	"strings"

	"github.com/resssoft/casefolio/internal/auth"
	"github.com/valyala/fasthttp"
)

type guardedHandler func(ctx *fasthttp.RequestCtx, session auth.Session)

// guard verifies the bearer credential before any mutating handler runs. A
// missing credential is 401, a bad or expired one 403; the client reacts to
// either by dropping its stored token and re-authenticating.
func (r *routerData) guard(next guardedHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		session := r.auth.Verify(bearerToken(ctx))
		switch session.State {
		case auth.SessionValid:
			next(ctx, session)
		case auth.SessionAbsent:
			writeJsonResponse(ctx, http.StatusUnauthorized, message("Access denied"))
		default:
			writeJsonResponse(ctx, http.StatusForbidden, message("Invalid token"))
		}
	}
}

func bearerToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

package routing

import (
	"net/http"
	"testing"
	"time"

	"github.com/resssoft/casefolio/internal/auth"
	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testRouterData() (*routerData, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return &routerData{
		dispatcher: mediator.NewDispatcher(),
		auth:       auth.NewService(nil, tokens),
	}, tokens
}

func TestGuardMissingCredential(t *testing.T) {
	r, _ := testRouterData()
	called := false
	handler := r.guard(func(ctx *fasthttp.RequestCtx, session auth.Session) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	handler(ctx)

	if called {
		t.Fatalf("handler must not run without a credential")
	}
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestGuardInvalidCredential(t *testing.T) {
	r, _ := testRouterData()
	called := false
	handler := r.guard(func(ctx *fasthttp.RequestCtx, session auth.Session) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer bogus")
	handler(ctx)

	if called {
		t.Fatalf("handler must not run with a bad credential")
	}
	if ctx.Response.StatusCode() != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", ctx.Response.StatusCode())
	}
}

func TestGuardValidCredential(t *testing.T) {
	r, tokens := testRouterData()
	token, err := tokens.Issue(models.User{
		MongoID:  primitive.NewObjectID(),
		Username: "admin",
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var got auth.Session
	handler := r.guard(func(ctx *fasthttp.RequestCtx, session auth.Session) {
		got = session
		ctx.SetStatusCode(http.StatusOK)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	handler(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}
	if got.State != auth.SessionValid || got.Username != "admin" {
		t.Fatalf("session = %+v, want valid admin session", got)
	}
}

func TestBearerToken(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	if bearerToken(ctx) != "" {
		t.Fatalf("expected empty token without header")
	}
	ctx.Request.Header.Set("Authorization", "Bearer abc.def.ghi")
	if got := bearerToken(ctx); got != "abc.def.ghi" {
		t.Fatalf("bearerToken = %q", got)
	}
}

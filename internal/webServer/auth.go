package routing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resssoft/casefolio/internal/auth"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

func (r *routerData) login(ctx *fasthttp.RequestCtx) {
	request := models.CredentialsRequest{}
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		writeJsonResponse(ctx, http.StatusBadRequest, message("malformed login body"))
		return
	}
	token, err := r.auth.Login(request.Username, request.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJsonResponse(ctx, http.StatusBadRequest, message("Invalid username or password"))
	case err != nil:
		log.Error().AnErr("login error", err).Send()
		writeJsonResponse(ctx, http.StatusInternalServerError, message("Server error"))
	default:
		writeJsonResponse(ctx, http.StatusOK, models.LoginResponse{
			Success: true,
			Token:   token,
		})
	}
}

func (r *routerData) register(ctx *fasthttp.RequestCtx) {
	request := models.CredentialsRequest{}
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		writeJsonResponse(ctx, http.StatusBadRequest, message("malformed register body"))
		return
	}
	err := r.auth.Register(request.Username, request.Password)
	var validation models.ValidationError
	switch {
	case errors.As(err, &validation), errors.Is(err, models.ErrDuplicateUsername):
		writeJsonResponse(ctx, http.StatusBadRequest, message("Error registering user"))
	case err != nil:
		writeJsonResponse(ctx, http.StatusInternalServerError, message("Server error"))
	default:
		writeJsonResponse(ctx, http.StatusCreated, message("User registered successfully"))
	}
}

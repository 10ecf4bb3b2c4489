package routing

import (
	"encoding/json"
	"fmt"

	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

func CORS(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		ctx.Response.Header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if string(ctx.Request.Header.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}
		next(ctx)
	}
}

func (r *routerData) withRequestLog(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		next(ctx)
		log.Debug().Msgf("%s %s -> %d",
			string(ctx.Request.Header.Method()),
			ctx.Request.URI().String(),
			ctx.Response.StatusCode())
		if err := r.dispatcher.Dispatch(models.LogToFile, models.FileLoggerEvent{
			Src: models.FileLogRequests,
			Data: fmt.Sprintf("%s %s %d",
				string(ctx.Request.Header.Method()),
				ctx.Request.URI().String(),
				ctx.Response.StatusCode()),
		}); err != nil {
			log.Debug().Err(err).Send()
		}
	}
}

func message(text string) models.MessageResponse {
	return models.MessageResponse{Message: text}
}

func writeJsonResponse(ctx *fasthttp.RequestCtx, code int, obj interface{}) {
	ctx.SetContentType("application/json; charset=utf8")
	ctx.Response.Header.SetCanonical(strContentType, strApplicationJSON)
	ctx.Response.SetStatusCode(code)
	if err := json.NewEncoder(ctx).Encode(obj); err != nil {
		log.Err(err).Send()
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
	}
}

package routing

import (
	"net/http"

	"github.com/resssoft/casefolio/internal/auth"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/uploads"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

func (r *routerData) uploadContent(ctx *fasthttp.RequestCtx, session auth.Session) {
	r.handleUpload(ctx, session, uploads.KindContent, "No image uploaded")
}

func (r *routerData) uploadThumbnail(ctx *fasthttp.RequestCtx, session auth.Session) {
	r.handleUpload(ctx, session, uploads.KindThumbnail, "No thumbnail uploaded")
}

func (r *routerData) uploadHero(ctx *fasthttp.RequestCtx, session auth.Session) {
	r.handleUpload(ctx, session, uploads.KindHero, "No hero image uploaded")
}

// handleUpload accepts a single multipart "image" part and answers with the
// stored blob name the client embeds in its draft.
func (r *routerData) handleUpload(ctx *fasthttp.RequestCtx, session auth.Session, kind uploads.Kind, missingMsg string) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		writeJsonResponse(ctx, http.StatusBadRequest, message(missingMsg))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeJsonResponse(ctx, http.StatusBadRequest, message(missingMsg))
		return
	}
	defer file.Close()

	name, err := r.storage.Save(kind, fileHeader.Filename, file)
	if err != nil {
		log.Error().AnErr("upload error", err).Send()
		writeJsonResponse(ctx, http.StatusInternalServerError, message("upload failed"))
		return
	}
	log.Info().
		Str("kind", string(kind)).
		Str("filename", name).
		Str("by", session.Username).
		Msg("upload stored")
	writeJsonResponse(ctx, http.StatusOK, models.UploadResponse{Filename: name})
}

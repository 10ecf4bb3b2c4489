package routing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resssoft/casefolio/internal/auth"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/ordering"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// listPosts serves the public catalogue. With ?sort=order it returns the
// persisted display order and decorates each item with its rank-derived
// layout variant; otherwise posts come newest first.
func (r *routerData) listPosts(ctx *fasthttp.RequestCtx) {
	if string(ctx.QueryArgs().Peek("sort")) == "order" {
		listed, err := r.posts.ListOrdered()
		if err != nil {
			writeJsonResponse(ctx, http.StatusInternalServerError, message(err.Error()))
			return
		}
		views := make([]models.PostView, 0, len(listed))
		for rank, post := range listed {
			views = append(views, models.PostView{
				Post:   post,
				Layout: string(ordering.LayoutOf(rank)),
			})
		}
		writeJsonResponse(ctx, http.StatusOK, views)
		return
	}
	listed, err := r.posts.ListRecent()
	if err != nil {
		writeJsonResponse(ctx, http.StatusInternalServerError, message(err.Error()))
		return
	}
	if listed == nil {
		listed = []models.Post{}
	}
	writeJsonResponse(ctx, http.StatusOK, listed)
}

func (r *routerData) getPost(ctx *fasthttp.RequestCtx) {
	slug, _ := ctx.UserValue("slug").(string)
	post, err := r.posts.GetBySlug(slug)
	if errors.Is(err, models.ErrNotFound) {
		writeJsonResponse(ctx, http.StatusNotFound, message("Post not found"))
		return
	}
	if err != nil {
		writeJsonResponse(ctx, http.StatusInternalServerError, message(err.Error()))
		return
	}
	writeJsonResponse(ctx, http.StatusOK, post)
}

func (r *routerData) createPost(ctx *fasthttp.RequestCtx, session auth.Session) {
	draft := models.PostDraft{}
	if err := json.Unmarshal(ctx.PostBody(), &draft); err != nil {
		writeJsonResponse(ctx, http.StatusBadRequest, message("malformed post body"))
		return
	}
	post, err := r.posts.Create(draft)
	var validation models.ValidationError
	switch {
	case errors.As(err, &validation), errors.Is(err, models.ErrDuplicateSlug):
		writeJsonResponse(ctx, http.StatusBadRequest, message(err.Error()))
	case err != nil:
		writeJsonResponse(ctx, http.StatusInternalServerError, message(err.Error()))
	default:
		log.Info().
			Str("slug", post.Slug).
			Str("by", session.Username).
			Msg("case study created")
		writeJsonResponse(ctx, http.StatusCreated, post)
	}
}

func (r *routerData) reorderPosts(ctx *fasthttp.RequestCtx, session auth.Session) {
	request := models.ReorderRequest{}
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		writeJsonResponse(ctx, http.StatusBadRequest, message("malformed reorder body"))
		return
	}
	sequence := make(ordering.Sequence, 0, len(request.CaseStudies))
	for _, item := range request.CaseStudies {
		sequence = append(sequence, item.ID)
	}
	err := r.posts.Reorder(sequence)
	var validation models.ValidationError
	var partial models.ReorderError
	switch {
	case errors.As(err, &validation):
		writeJsonResponse(ctx, http.StatusBadRequest, message(err.Error()))
	case errors.As(err, &partial):
		// Partial failure: name the ids already written so the admin can
		// decide whether to resubmit.
		writeJsonResponse(ctx, http.StatusInternalServerError, models.ReorderFailure{
			Message: partial.Error(),
			Applied: partial.Applied,
		})
	case err != nil:
		writeJsonResponse(ctx, http.StatusInternalServerError, message(err.Error()))
	default:
		log.Info().
			Int("count", len(sequence)).
			Str("by", session.Username).
			Msg("display order updated")
		writeJsonResponse(ctx, http.StatusOK, message("Order updated successfully"))
	}
}

func (r *routerData) deletePost(ctx *fasthttp.RequestCtx, session auth.Session) {
	id, _ := ctx.UserValue("id").(string)
	err := r.posts.Delete(id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJsonResponse(ctx, http.StatusNotFound, message("Post not found"))
	case err != nil:
		writeJsonResponse(ctx, http.StatusInternalServerError, message(err.Error()))
	default:
		log.Info().
			Str("id", id).
			Str("by", session.Username).
			Msg("case study deleted")
		writeJsonResponse(ctx, http.StatusOK, message("Post deleted successfully"))
	}
}

package routing

import (
	"net/http"

	"github.com/buaazp/fasthttprouter"
	config "github.com/resssoft/casefolio/configuration"
	"github.com/resssoft/casefolio/internal/auth"
	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/posts"
	"github.com/resssoft/casefolio/internal/uploads"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

var (
	strContentType     = []byte("Content-Type")
	strApplicationJSON = []byte("application/json")
)

type routerData struct {
	dispatcher *mediator.Dispatcher
	posts      *posts.Service
	auth       *auth.Service
	storage    *uploads.Storage
}

func NewRouter(
	dispatcher *mediator.Dispatcher,
	postsService *posts.Service,
	authService *auth.Service,
	storage *uploads.Storage,
) error {
	routerDataConf := &routerData{
		dispatcher: dispatcher,
		posts:      postsService,
		auth:       authService,
		storage:    storage,
	}
	prefix := config.WebServerPrefix()
	router := fasthttprouter.New()
	router.GET("/", IndexHandler)
	router.GET(prefix+"/status", StatusHandler)

	router.POST(prefix+"/login", routerDataConf.login)
	router.POST(prefix+"/register", routerDataConf.register)

	router.GET(prefix+"/posts", routerDataConf.listPosts)
	router.GET(prefix+"/posts/:slug", routerDataConf.getPost)
	router.POST(prefix+"/posts", routerDataConf.guard(routerDataConf.createPost))
	router.POST(prefix+"/posts/reorder", routerDataConf.guard(routerDataConf.reorderPosts))
	router.DELETE(prefix+"/posts/:id", routerDataConf.guard(routerDataConf.deletePost))

	router.POST(prefix+"/upload", routerDataConf.guard(routerDataConf.uploadContent))
	router.POST(prefix+"/upload/thumbnail", routerDataConf.guard(routerDataConf.uploadThumbnail))
	router.POST(prefix+"/upload/hero", routerDataConf.guard(routerDataConf.uploadHero))

	// Uploaded blobs are public by filename.
	router.ServeFiles("/uploads/*filepath", storage.Root())

	log.Info().Msg("Start web server by " + config.WebServerAddress())
	return fasthttp.ListenAndServe(config.WebServerAddress(), routerDataConf.withRequestLog(CORS(router.Handler)))
}

func IndexHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf8")
	ctx.SetStatusCode(403)
}

func StatusHandler(ctx *fasthttp.RequestCtx) {
	writeJsonResponse(ctx, http.StatusOK, config.GetMemUsage())
}

package demo

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/conduit-lang/jason/internal/metrics"
	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/conduit-lang/jason/internal/web/cache"
	"github.com/conduit-lang/jason/internal/web/middleware"
	"github.com/conduit-lang/jason/internal/web/profiling"
	"github.com/conduit-lang/jason/internal/web/response"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// maxBodyBytes bounds POST bodies
const maxBodyBytes = 1 << 20

// Config holds the dependencies of the demo routes
type Config struct {
	Responder *response.Responder
	Store     *Store
	Logger    *zap.Logger

	// Cache enables the response cache when non-nil
	Cache    cache.Cache
	CacheTTL time.Duration

	// Metrics exposes the Prometheus registry at MetricsPath when non-nil
	Metrics     *metrics.Metrics
	MetricsPath string

	// ProfilingPath mounts the pprof endpoints when non-empty
	ProfilingPath string
}

type handlers struct {
	responder *response.Responder
	store     *Store
}

// NewRouter builds the demo HTTP handler
func NewRouter(config Config) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metricsPath := config.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: logger, SkipPaths: []string{metricsPath}}),
		middleware.Recovery(logger),
	)

	if config.Metrics != nil {
		r.Method(http.MethodGet, metricsPath, config.Metrics.Handler())
	}

	if config.ProfilingPath != "" {
		profilingConfig := profiling.DefaultConfig()
		profilingConfig.Path = config.ProfilingPath
		profiling.RegisterRoutes(r, profilingConfig)
	}

	h := &handlers{responder: config.Responder, store: config.Store}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Negotiate())
		if config.Cache != nil {
			r.Use(cache.Middleware(cache.MiddlewareConfig{
				Cache:        config.Cache,
				TTL:          config.CacheTTL,
				CacheControl: "public, max-age=60",
				Logger:       logger,
			}))
		}

		r.Get("/articles", h.responder.Handle(h.listArticles))
		r.Get("/articles/{id}", h.responder.Handle(h.showArticle))
		r.Post("/articles", h.responder.Handle(h.createArticle))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.RenderError(w, response.NewHTTPError(http.StatusNotFound, "no route for %s", req.URL.Path), "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.RenderError(w, response.NewHTTPError(http.StatusMethodNotAllowed, "%s not allowed on %s", req.Method, req.URL.Path), "")
	})

	return r
}

func (h *handlers) listArticles(r *http.Request) (*response.Reply, error) {
	extra := serializer.ExtraData{}
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err := cast.ToIntE(raw)
		if err != nil {
			return nil, response.NewHTTPError(http.StatusBadRequest, "count must be an integer").
				WithCode("invalid_parameter")
		}
		extra["count"] = count
	}

	return h.responder.WithJSON(r, "article", h.store.List(), extra)
}

func (h *handlers) showArticle(r *http.Request) (*response.Reply, error) {
	id := chi.URLParam(r, "id")
	article, ok := h.store.Get(id)
	if !ok {
		return nil, response.NewHTTPError(http.StatusNotFound, "article %s not found", id)
	}

	return h.responder.WithJSON(r, "article", article, nil)
}

func (h *handlers) createArticle(r *http.Request) (*response.Reply, error) {
	var article serializer.Resource
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := decoder.Decode(&article); err != nil || article == nil {
		return nil, response.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object").
			WithCode("invalid_body").
			WithPointer("/")
	}

	candidate := withID(article)
	reply, err := h.responder.WithJSON(r, "article", candidate, nil)
	if err != nil {
		return nil, response.InvalidResource("article", err)
	}
	h.store.Put(candidate)

	return reply.Code(http.StatusCreated).Header("Location", "/articles/"+cast.ToString(candidate["id"])), nil
}

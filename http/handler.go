package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/bootstrap"
)

// Service handles object reads and writes. *text2kv.TextService implements it.
type Service interface {
	Handle(ctx context.Context, req text2kv.Request) (string, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	Gate *text2kv.Gate
	// PublicScheme is used in links rendered by the bootstrap views. When
	// empty it is derived from the request.
	PublicScheme string
	CORS         CORSConfig
}

// Handler serves the single text2kv entry point.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler. A nil config.Gate uses the default token.
// A nil service is accepted; every request then fails with ErrStoreUnbound.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	cfg := *config
	if cfg.Gate == nil {
		cfg.Gate = text2kv.NewGate("")
	}
	return &Handler{
		config:  cfg,
		service: service,
	}
}

// Router returns an http.Handler that accepts any method on any path.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogMiddleware(h.config.Gate))
	r.Use(RecoverMiddleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(StoreBoundMiddleware(h.service != nil))
	r.Use(AuthMiddleware(h.config.Gate))

	r.HandleFunc("/*", h.handleRequest)

	return r
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	token := h.config.Gate.Token()
	route := text2kv.Resolve(r.URL.Path, token)
	views := bootstrap.New(h.scheme(r))

	switch route.Kind {
	case text2kv.RouteConfig:
		page, err := views.ConfigPage(r.Host, token)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteResponse(w, http.StatusOK, page, map[string]string{
			"Content-Type": "text/html; charset=UTF-8",
		})

	case text2kv.RouteScriptBat, text2kv.RouteScriptSh:
		render := views.BatScript
		if route.Kind == text2kv.RouteScriptSh {
			render = views.ShScript
		}
		script, err := render(r.Host, token)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteResponse(w, http.StatusOK, script, map[string]string{
			"Content-Disposition": "attachment; filename=" + bootstrap.ScriptFileName(route.Kind),
		})

	default:
		h.handleObject(w, r, route.Name)
	}
}

func (h *Handler) handleObject(w http.ResponseWriter, r *http.Request, name string) {
	query := r.URL.Query()
	req := text2kv.Request{
		Name: name,
		Text: query.Get("text"),
		B64:  query.Get("b64"),
	}

	value, err := h.service.Handle(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteResponse(w, http.StatusOK, value, nil)
}

func (h *Handler) scheme(r *http.Request) string {
	if h.config.PublicScheme != "" {
		return h.config.PublicScheme
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

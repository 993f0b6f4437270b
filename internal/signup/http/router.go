package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/delveng/signup/internal/signup/service"
	"github.com/delveng/signup/internal/signup/store"
	"github.com/delveng/signup/pkg/httpx"
	"github.com/delveng/signup/pkg/jwtx"
	"github.com/delveng/signup/pkg/slogx"

	_ "github.com/delveng/signup/api/signup" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	FlowService *service.FlowService
}

func NewRouter(verifier jwtx.Verifier, buildVersion string, st store.Store, flows *service.FlowService, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		FlowService:  flows,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	return r
}

func (r *Router) ApplyRoutes() {
	r.registerFlows()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP applies the global middleware chain.
//
//	@title			Delveng Early Access Signup API
//	@version		0.1.0
//	@description	Drives the early-access signup journey: welcome, account form, optional Google sign-in, preferences questionnaire and completion.
//	@description	Each browser holds a flow token returned by POST /v1/flows and sends it as a bearer token.
//
//	@host						localhost:8080
//	@BasePath					/
//	@schemes					http https
//
//	@securityDefinitions.apikey	FlowToken
//	@in							header
//	@name						Authorization
//	@description				Flow token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerFlows() {
	h := &FlowsHandler{Flows: r.FlowService}

	// creating flows is unauthenticated, so keep it tight
	r.Mux.Handle("POST /v1/flows",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByDevice(limit),
		)
	}

	r.Mux.Handle("GET /v1/flows/current", secured(h.HandleGet, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/flows/current/start", secured(h.HandleStart, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/flows/current/draft", secured(h.HandleDraft, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/flows/current/submit", secured(h.HandleSubmit, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/flows/current/identity", secured(h.HandleIdentity, httpx.StrictLimit))
	r.Mux.Handle("PUT /v1/flows/current/preferences", secured(h.HandleUpdatePreferences, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/flows/current/preferences", secured(h.HandleSubmitPreferences, httpx.StrictLimit))
	r.Mux.Handle("POST /v1/flows/current/cancel", secured(h.HandleCancel, httpx.ModerateLimit))

	r.Mux.Handle("GET /v1/options",
		httpx.Chain(OptionsHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSession() {
	r.Mux.Handle("DELETE /v1/session",
		httpx.Chain(&SessionHandler{Flows: r.FlowService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByDevice(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// probes may poll often
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.FlowService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

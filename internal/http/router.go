// Package http wires the hackmate API surface: auth, profile, dashboard,
// requests, chats, and the system endpoints.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hackmatehq/hackmate/internal/metrics"
	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/internal/ws"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/jwtx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService    *service.AuthService
	ProfileService *service.ProfileService
	MatchService   *service.MatchService
	InviteService  *service.InviteService
	ChatService    *service.ChatService
	BioService     *service.BioService
	Relay          *ws.Relay
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOptions()
	r.registerProfile()
	r.registerBio()
	r.registerDashboard()
	r.registerRequests()
	r.registerChats()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// instrument records handler latency under the given route label.
func instrument(route string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			metrics.RequestDuration.
				WithLabelValues(route, strconv.Itoa(rec.status/100*100)).
				Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, ProfileService: r.ProfileService}

	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			instrument("/v1/auth/register"),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			instrument("/v1/auth/login"),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			instrument("/v1/auth/me"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			instrument("/v1/auth/logout"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerOptions() {
	// Public vocabulary endpoint for the registration form.
	r.Mux.Handle("GET /v1/options",
		httpx.Chain(&OptionsHandler{},
			instrument("/v1/options"),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("GET /v1/profile",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			instrument("/v1/profile"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/profile",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			instrument("/v1/profile"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/profile/deactivate",
		httpx.Chain(http.HandlerFunc(h.HandleDeactivate),
			instrument("/v1/profile/deactivate"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerBio() {
	h := &BioHandler{BioService: r.BioService}

	r.Mux.Handle("POST /v1/bio/generate",
		httpx.Chain(http.HandlerFunc(h.HandleGenerate),
			instrument("/v1/bio/generate"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{MatchService: r.MatchService, InviteService: r.InviteService}

	r.Mux.Handle("GET /v1/dashboard/next-card",
		httpx.Chain(http.HandlerFunc(h.HandleNextCard),
			instrument("/v1/dashboard/next-card"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/dashboard/invite",
		httpx.Chain(http.HandlerFunc(h.HandleInvite),
			instrument("/v1/dashboard/invite"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/dashboard/skip",
		httpx.Chain(http.HandlerFunc(h.HandleSkip),
			instrument("/v1/dashboard/skip"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/dashboard/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			instrument("/v1/dashboard/reset"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/dashboard/stats",
		httpx.Chain(http.HandlerFunc(h.HandleStats),
			instrument("/v1/dashboard/stats"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRequests() {
	h := &RequestsHandler{InviteService: r.InviteService}

	r.Mux.Handle("GET /v1/requests/incoming",
		httpx.Chain(http.HandlerFunc(h.HandleIncoming),
			instrument("/v1/requests/incoming"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/requests/sent",
		httpx.Chain(http.HandlerFunc(h.HandleSent),
			instrument("/v1/requests/sent"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/requests/{id}/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			instrument("/v1/requests/{id}/accept"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/requests/{id}/reject",
		httpx.Chain(http.HandlerFunc(h.HandleReject),
			instrument("/v1/requests/{id}/reject"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/requests/stats",
		httpx.Chain(http.HandlerFunc(h.HandleStats),
			instrument("/v1/requests/stats"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerChats() {
	h := &ChatsHandler{ChatService: r.ChatService, Relay: r.Relay}

	r.Mux.Handle("GET /v1/chats",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			instrument("/v1/chats"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/chats/{id}/messages",
		httpx.Chain(http.HandlerFunc(h.HandleMessages),
			instrument("/v1/chats/{id}/messages"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/chats/{id}/messages",
		httpx.Chain(http.HandlerFunc(h.HandlePostMessage),
			instrument("/v1/chats/{id}/messages"),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// The upgrade endpoint skips the latency histogram: a healthy socket
	// holds the handler open for the whole session.
	r.Mux.Handle("GET /v1/chats/{id}/ws",
		httpx.Chain(http.HandlerFunc(h.HandleWS),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metrics.Handler())
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/plugin-accounts/internal/application/account"
	"github.com/plugin-accounts/internal/config"
	"github.com/plugin-accounts/internal/infrastructure/dynamo"
	jwtinfra "github.com/plugin-accounts/internal/infrastructure/jwt"
	"github.com/plugin-accounts/internal/infrastructure/memstore"
	"github.com/plugin-accounts/internal/infrastructure/notify"
	"github.com/plugin-accounts/internal/transport/http/handler"
	appmiddleware "github.com/plugin-accounts/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo *dynamo.AccountRepo
	CodeStore   *memstore.CodeStore
	Notifier    notify.Notifier
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	// The client is a browser extension; without matching origins the
	// extension's fetches die on the same-origin policy.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	accountSvc := account.NewService(account.ServiceDeps{
		AccountRepo:     deps.AccountRepo,
		CodeStore:       deps.CodeStore,
		Notifier:        deps.Notifier,
		Signer:          deps.JWTProvider,
		CodeTTL:         cfg.CodeTTL,
		DeliveryTimeout: cfg.DeliveryTimeout,
	})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/send-verification-code", accountH.SendCode)
		r.Post("/register", accountH.Register)
		r.Post("/login", accountH.Login)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Get("/users/me", accountH.Me)
			r.Post("/subscription/upgrade-mock", accountH.Upgrade)
		})
	})

	return r
}

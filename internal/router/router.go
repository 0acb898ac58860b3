package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/finance-tracker/internal/handlers"
	"github.com/GregMSThompson/finance-tracker/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rh := handlers.NewRootHandlers(deps)
	ah := handlers.NewAuthHandlers(deps)
	th := handlers.NewTransactionHandlers(deps)
	bh := handlers.NewBudgetHandlers(deps)
	gh := handlers.NewSavingsGoalHandlers(deps)

	limiter := middleware.NewRateLimiter(deps.LoginRatePerMinute, deps.LoginRateBurst, deps.ResponseHandler)
	auth := middleware.NewMiddleware(deps.AuthSvc, deps.ResponseHandler)

	r.Get("/", rh.Welcome)
	r.Get("/healthz", rh.Healthz)
	r.Post("/register", ah.Register)
	r.With(limiter.Limit).Post("/token", ah.Token)

	r.Group(func(r chi.Router) {
		r.Use(auth.BearerAuth)
		r.Mount("/users", ah.UserRoutes())
		r.Mount("/transactions", th.TransactionRoutes())
		r.Mount("/budgets", bh.BudgetRoutes())
		r.Mount("/savings-goals", gh.SavingsGoalRoutes())
	})
	return r
}

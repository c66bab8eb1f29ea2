package router

import (
	"banking-service/internal/handler"
	"banking-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func New(
	auth *usecase.AuthService,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	txHandler *handler.TransactionHandler,
	reportHandler *handler.ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(handler.RequireAuth(auth))

			r.Post("/logout", authHandler.Logout)

			r.Get("/accounts", accountHandler.List)
			r.Post("/accounts", accountHandler.Create)

			r.Get("/transactions", txHandler.List)
			r.Post("/transactions/deposit", txHandler.Deposit)
			r.Post("/transactions/withdraw", txHandler.Withdraw)
			r.Post("/transactions/transfer", txHandler.Transfer)

			r.Get("/reports/dashboard_stats", reportHandler.DashboardStats)
			r.Get("/reports/account_summary", reportHandler.AccountSummary)
			r.Get("/reports/daily_summary", reportHandler.DailySummary)
		})
	})

	return r
}

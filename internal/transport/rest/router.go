package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"expensehub/internal/auth"
	"expensehub/internal/company"
	"expensehub/internal/expense"
	"expensehub/internal/transport/middleware"
	"expensehub/internal/transport/swagger"
	"expensehub/internal/user"
)

// RegisterAllRoutes wires the HTTP surface. Everything except login, health
// and the API docs sits behind the token middleware; fine-grained
// authorization happens inside the services.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, companyHandler *company.Handler, expenseHandler *expense.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Post("/auth/login", authHandler.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.Middleware)

			pr.Post("/auth/change-password", authHandler.ChangePassword)

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", userHandler.CreateUser)
				ur.Get("/", userHandler.ListUsers)
				ur.Get("/me", userHandler.GetCurrentUser)
				ur.Get("/reports", userHandler.GetDirectReports)
				ur.Get("/{id}", userHandler.GetUser)
				ur.Patch("/{id}", userHandler.UpdateUser)
				ur.Delete("/{id}", userHandler.DeleteUser)
				ur.Get("/{id}/expenses", expenseHandler.ListUserExpenses)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/", expenseHandler.ListExpenses)
			})

			pr.Route("/companies", func(cr chi.Router) {
				cr.Post("/", companyHandler.CreateCompany)
				cr.Get("/", companyHandler.ListCompanies)
				cr.Get("/{id}/config", companyHandler.GetCompanyConfig)
			})
		})
	})
}

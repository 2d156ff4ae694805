package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/helpdesk/internal/article"
	"github.com/frahmantamala/helpdesk/internal/assistant"
	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/ticket"
	"github.com/frahmantamala/helpdesk/internal/transport/middleware"
	"github.com/frahmantamala/helpdesk/internal/transport/swagger"
	"github.com/frahmantamala/helpdesk/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, articleHandler *article.Handler, ticketHandler *ticket.Handler, assistantHandler *assistant.Handler, uploadsDir string, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded ticket attachments
	if uploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		router.Handle("/uploads/*", fileServer)
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				pr.Get("/auth/verify", authHandler.Verify)

				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)

					// User provisioning stays admin only
					pr.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireRole(authz.RoleAdmin))
						ar.Post("/users", userHandler.Register)
					})
				}

				// Knowledge base routes, mutations checked at the service layer
				if articleHandler != nil {
					pr.Route("/articles", func(kr chi.Router) {
						kr.Post("/", articleHandler.CreateArticle)
						kr.Get("/", articleHandler.ListArticles)
						kr.Get("/search", articleHandler.SearchArticles)
						kr.Get("/{id}", articleHandler.GetArticle)
						kr.Put("/{id}", articleHandler.UpdateArticle)
						kr.Delete("/{id}", articleHandler.DeleteArticle)
					})
				}

				// Ticket routes
				if ticketHandler != nil {
					pr.Route("/tickets", func(tr chi.Router) {
						tr.Post("/", ticketHandler.CreateTicket)
						tr.Get("/", ticketHandler.ListTickets)
						tr.Get("/{id}", ticketHandler.GetTicket)
						tr.Put("/{id}", ticketHandler.UpdateTicket)
						tr.Delete("/{id}", ticketHandler.DeleteTicket)
						tr.Post("/{id}/attachment", ticketHandler.UploadAttachment)
					})
				}

				// AI assistant
				if assistantHandler != nil {
					pr.Post("/assistant/answer", assistantHandler.Answer)
				}
			})
		}
	})
}

package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/absence-request/internal/absence"
	"github.com/frahmantamala/absence-request/internal/activity"
	"github.com/frahmantamala/absence-request/internal/auth"
	"github.com/frahmantamala/absence-request/internal/transport/middleware"
	"github.com/frahmantamala/absence-request/internal/transport/swagger"
	"github.com/frahmantamala/absence-request/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// OpenAPIPath is where the API document is read from, relative to the working directory.
var OpenAPIPath = "./api/openapi.yml"

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, absenceHandler *absence.Handler, activityHandler *activity.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, OpenAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if authHandler != nil {
		router.Post("/auth/login", authHandler.Login)
	}
	if userHandler != nil {
		router.Post("/auth/register", userHandler.Register)
	}

	if absenceHandler != nil {
		router.Post("/requests", absenceHandler.CreateRequest)                          // POST /requests
		router.Get("/requests", absenceHandler.ListRequests)                            // GET /requests (staff)
		router.Get("/requests/{student_id}", absenceHandler.ListStudentRequests)        // GET /requests/:student_id
		router.Patch("/requests/{student_id}/{id}", absenceHandler.UpdateRequestStatus) // PATCH /requests/:student_id/:id
		router.Get("/requests2/{student_id}/{id}", absenceHandler.GetRequestDetail)     // GET /requests2/:student_id/:id
	}

	if activityHandler != nil {
		router.Get("/activities", activityHandler.ListActivities)
	}
}

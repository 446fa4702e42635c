package rest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/absence-request/internal/absence"
	"github.com/frahmantamala/absence-request/internal/activity"
	"github.com/frahmantamala/absence-request/internal/auth"
	"github.com/frahmantamala/absence-request/internal/transport"
	"github.com/frahmantamala/absence-request/internal/transport/middleware"
	"github.com/frahmantamala/absence-request/internal/transport/rest"
	"github.com/frahmantamala/absence-request/internal/user"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const openAPIFile = "../../../api/openapi.yml"

func newRouter(db *sql.DB) *chi.Mux {
	slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	base := transport.NewBaseHandler(slogger)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db,
		auth.NewHandler(base, nil),
		user.NewHandler(base, nil),
		absence.NewHandler(base, nil),
		activity.NewHandler(base, nil),
		slogger)
	return router
}

func get(router http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var _ = Describe("Router", func() {
	BeforeEach(func() {
		previous := rest.OpenAPIPath
		rest.OpenAPIPath = openAPIFile
		DeferCleanup(func() { rest.OpenAPIPath = previous })
	})

	It("documents every mounted API route in the OpenAPI file", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile(openAPIFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Validate(context.Background())).To(Succeed())

		var routes []string
		err = chi.Walk(newRouter(nil), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if strings.HasPrefix(route, "/swagger") || route == "/openapi.yml" {
				return nil
			}
			routes = append(routes, method+" "+route)

			item := doc.Paths.Find(route)
			Expect(item).NotTo(BeNil(), "route %s is not documented", route)
			Expect(item.GetOperation(method)).NotTo(BeNil(), "%s %s is not documented", method, route)
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(routes).To(ContainElements(
			"POST /auth/register",
			"POST /auth/login",
			"POST /requests",
			"GET /requests",
			"GET /requests/{student_id}",
			"PATCH /requests/{student_id}/{id}",
			"GET /requests2/{student_id}/{id}",
			"GET /activities",
		))
	})

	It("documents that accounts never expose the password hash", func() {
		doc, err := openapi3.NewLoader().LoadFromFile(openAPIFile)
		Expect(err).NotTo(HaveOccurred())

		userSchema := doc.Components.Schemas["User"].Value
		Expect(userSchema.Properties).NotTo(HaveKey("password_hash"))
		Expect(userSchema.Description).To(ContainSubstring("password_hash"))
		Expect(doc.Components.Schemas["LoginResponse"].Value.Description).To(ContainSubstring("password_hash"))
	})

	It("serves the OpenAPI document and the swagger UI", func() {
		router := newRouter(nil)

		w := get(router, "/openapi.yml", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("title: Absence Request API"))

		Expect(get(router, "/swagger/index.html", nil).Code).To(Equal(http.StatusOK))
	})

	It("echoes a caller supplied request id", func() {
		w := get(newRouter(nil), "/ping", http.Header{middleware.RequestIDHeader: {"req-123"}})
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))
	})

	It("assigns a request id when none is supplied", func() {
		w := get(newRouter(nil), "/ping", nil)
		Expect(w.Header().Get(middleware.RequestIDHeader)).NotTo(BeEmpty())
	})

	It("answers unknown routes with 404", func() {
		Expect(get(newRouter(nil), "/requests3", nil).Code).To(Equal(http.StatusNotFound))
	})
})

var _ = Describe("Health", func() {
	It("answers ping without touching the store", func() {
		w := get(newRouter(nil), "/ping", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"OK"`))
	})

	It("is unhealthy without a database", func() {
		w := get(newRouter(nil), "/health", nil)
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
		Expect(resp.Components).To(HaveKey("database"))
	})

	It("is healthy when the database answers", func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sqlDB.Close)

		w := get(newRouter(sqlDB), "/health", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Components["database"].Status).To(Equal(rest.HealthHealthy))
	})

	It("is unhealthy once the database is closed", func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())

		w := get(newRouter(sqlDB), "/health", nil)
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})

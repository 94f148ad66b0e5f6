// Package dashboard предоставляет маршруты для приложения панели.
package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	activitylist "github.com/chops-club/membership-dashboard/internal/http/handlers/activity/list"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/auth/login"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/catalog/sessions"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/catalog/trainings"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/health"
	memberlist "github.com/chops-club/membership-dashboard/internal/http/handlers/member/list"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/member/refresh"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/member/validatestudent"
	purchaselist "github.com/chops-club/membership-dashboard/internal/http/handlers/purchase/list"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/purchase/markpaid"
	"github.com/chops-club/membership-dashboard/internal/http/handlers/stats/overview"
	"github.com/chops-club/membership-dashboard/internal/http/middlewarectx"
	activityservice "github.com/chops-club/membership-dashboard/internal/services/activity"
	adminservice "github.com/chops-club/membership-dashboard/internal/services/admin"
	catalogservice "github.com/chops-club/membership-dashboard/internal/services/catalog"
	memberservice "github.com/chops-club/membership-dashboard/internal/services/member"
	operatorservice "github.com/chops-club/membership-dashboard/internal/services/operator"
	purchaseservice "github.com/chops-club/membership-dashboard/internal/services/purchase"
	statsservice "github.com/chops-club/membership-dashboard/internal/services/stats"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maker middlewarectx.TokenParser,
	operatorService *operatorservice.Service,
	memberService *memberservice.Service,
	adminService *adminservice.Service,
	purchaseService *purchaseservice.Service,
	statsService *statsservice.Service,
	catalogService *catalogservice.Service,
	activityService *activityservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, operatorService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/members", memberlist.New(logger, memberService).ServeHTTP)
			r.Post("/members/refresh", refresh.New(logger, memberService).ServeHTTP)
			r.Post("/members/{id}/validate-student", validatestudent.New(logger, adminService).ServeHTTP)
			r.Get("/purchases", purchaselist.New(logger, purchaseService).ServeHTTP)
			r.Post("/purchases/{id}/mark-paid", markpaid.New(logger, adminService).ServeHTTP)
			r.Get("/stats/overview", overview.New(logger, statsService).ServeHTTP)
			r.Get("/sessions", sessions.New(logger, catalogService).ServeHTTP)
			r.Get("/trainings", trainings.New(logger, catalogService).ServeHTTP)
			r.Get("/activity/{kind}", activitylist.New(logger, activityService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
	r.Get("/health", health.New(logger).ServeHTTP)
}

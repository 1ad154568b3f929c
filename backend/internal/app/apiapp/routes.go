package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	analyticsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/analytics"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
	compliancesvc "github.com/brodiemcgee/eros-admin/backend/internal/services/compliance"
	dashboardsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/dashboard"
	photossvc "github.com/brodiemcgee/eros-admin/backend/internal/services/photos"
	subssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/subscriptions"
	userssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/users"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/handlers"
)

const (
	superAdmin = enums.AdminRoleSuperAdmin
	admin      = enums.AdminRoleAdmin
	moderator  = enums.AdminRoleModerator
	support    = enums.AdminRoleSupport
)

type Dependencies struct {
	AuthService          *authsvc.Service
	DashboardService     *dashboardsvc.Service
	PhotosService        *photossvc.Service
	ComplianceService    *compliancesvc.Service
	SubscriptionsService *subssvc.Service
	UsersService         *userssvc.Service
	AnalyticsService     *analyticsvc.Service
	Degraded             func() []string
	Logger               *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.Degraded)
	dashboardHandler := handlers.NewDashboardHandler(deps.DashboardService, deps.Logger)
	photosHandler := handlers.NewPhotosHandler(deps.PhotosService, deps.Logger)
	complianceHandler := handlers.NewComplianceHandler(deps.ComplianceService, deps.Logger)
	subscriptionsHandler := handlers.NewSubscriptionsHandler(deps.SubscriptionsService, deps.Logger)
	usersHandler := handlers.NewUsersHandler(deps.UsersService, deps.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.AnalyticsService, deps.Logger)

	var validator TokenValidator
	if deps.AuthService != nil {
		validator = deps.AuthService
	}
	authMW := AuthMiddleware(validator, deps.Logger)

	moderationRoles := RequireRole(superAdmin, admin, moderator)
	supportRoles := RequireRole(superAdmin, admin, support)
	adminRoles := RequireRole(superAdmin, admin)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/totp/setup", authHandler.TOTPSetup)
			r.Post("/auth/totp/enable", authHandler.TOTPEnable)

			r.Get("/dashboard", dashboardHandler.Get)
			r.Get("/users", usersHandler.List)

			r.With(moderationRoles).Get("/photos", photosHandler.List)
			r.With(moderationRoles).Post("/photos/{id}/approve", photosHandler.Approve)
			r.With(moderationRoles).Post("/photos/{id}/reject", photosHandler.Reject)

			r.With(moderationRoles).Get("/compliance/age-verifications", complianceHandler.AgeVerifications)
			r.With(moderationRoles).Post("/compliance/age-verifications/{id}/{action}", complianceHandler.DecideAgeVerification)
			r.With(supportRoles).Get("/compliance/gdpr", complianceHandler.GdprRequests)
			r.With(supportRoles).Post("/compliance/gdpr/{id}/{action}", complianceHandler.ProcessGdprRequest)
			r.With(moderationRoles).Get("/compliance/flags", complianceHandler.ContentFlags)
			r.With(moderationRoles).Post("/compliance/flags/{id}/{action}", complianceHandler.ResolveContentFlag)

			r.With(supportRoles).Get("/subscriptions/plans", subscriptionsHandler.Plans)
			r.With(adminRoles).Post("/subscriptions/plans/{id}/toggle", subscriptionsHandler.TogglePlan)
			r.With(supportRoles).Get("/subscriptions", subscriptionsHandler.List)
			r.With(supportRoles).Post("/subscriptions/{id}/cancel", subscriptionsHandler.Cancel)
			r.With(adminRoles).Post("/subscriptions/{id}/refund", subscriptionsHandler.Refund)

			r.With(moderationRoles).Post("/users/{id}/ban", usersHandler.Ban)
			r.With(moderationRoles).Post("/users/{id}/unban", usersHandler.Unban)

			r.With(adminRoles).Get("/analytics", analyticsHandler.Get)
		})
	})
}

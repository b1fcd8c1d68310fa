package routes

import (
	"federation-backend/controllers"
	"federation-backend/middleware"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Payments *controllers.PaymentController
	Auth     *controllers.AuthController
	Athletes *controllers.AthleteController
	Clubs    *controllers.ClubController
	Seasons  *controllers.SeasonController
}

func Register(r *gin.Engine, ctl Controllers, tokens *services.TokenService) {
	// Stripe webhook stays outside every middleware group: signature
	// verification is its authentication.
	r.POST("/payments/webhook", ctl.Payments.StripeWebhook)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit())
	auth.POST("/login", ctl.Auth.Login)
	auth.POST("/admin-access", ctl.Auth.AdminAccess)
	auth.POST("/change-password", middleware.RequireAuth(tokens), ctl.Auth.ChangePassword)

	payments := r.Group("/payments")
	payments.Use(middleware.RequireAuth(tokens))
	payments.POST("/create-session", ctl.Payments.CreateSession)
	payments.GET("/verify-session", ctl.Payments.VerifySession)
	payments.GET("/insurance-status", ctl.Payments.InsuranceStatus)

	api := r.Group("/")
	api.Use(middleware.RequireAuth(tokens))

	api.GET("/athletes", ctl.Athletes.List)
	api.GET("/athletes/:id", ctl.Athletes.Get)
	api.POST("/athletes", ctl.Athletes.Create)
	api.PUT("/athletes/:id", ctl.Athletes.Update)

	api.GET("/clubs", ctl.Clubs.List)
	api.GET("/clubs/:id", ctl.Clubs.Get)

	api.GET("/seasons", ctl.Seasons.List)
	api.GET("/seasons/current", ctl.Seasons.Current)

	admin := api.Group("/")
	admin.Use(middleware.RequireRole(services.RoleAdmin))
	admin.DELETE("/athletes/:id", ctl.Athletes.Delete)
	admin.POST("/clubs", ctl.Clubs.Create)
	admin.PUT("/clubs/:id", ctl.Clubs.Update)
	admin.DELETE("/clubs/:id", ctl.Clubs.Delete)
	admin.POST("/clubs/:id/managers", ctl.Clubs.CreateManager)
	admin.POST("/seasons", ctl.Seasons.Create)
	admin.PUT("/seasons/:id/current", ctl.Seasons.SetCurrent)
}

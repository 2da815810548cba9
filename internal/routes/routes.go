package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/auth"
	"github.com/BruksfildServices01/inkless-booking/internal/config"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/pricing"
	"github.com/BruksfildServices01/inkless-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/inkless-booking/internal/infra/repository"
	"github.com/BruksfildServices01/inkless-booking/internal/infra/storage"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/payment"
	"github.com/BruksfildServices01/inkless-booking/internal/usecase/checkout"
)

// Deps are the process-wide singletons the routes are built from. Optional
// integrations are nil when not configured.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Audit  *audit.Dispatcher
	Tokens *auth.Service

	Idempotency checkout.IdempotencyStore
	Payments    *payment.Registry
	Storage     storage.Uploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	checkoutRepo := infraRepo.NewCheckoutGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, d.Tokens, d.Audit, cfg.VerifyEmailDomain)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db, d.Storage, d.Audit)
	packageHandler := handlers.NewPackageHandler(db, d.Audit)
	couponHandler := handlers.NewCouponHandler(db, d.Audit)
	affiliateHandler := handlers.NewAffiliateHandler(db, d.Audit)
	availabilityHandler := handlers.NewAvailabilityHandler(db, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, d.Audit)
	purchaseHandler := handlers.NewPurchaseHandler(db, checkoutRepo, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, checkoutRepo, appointmentRepo, d.Audit, handlers.CheckoutOptions{
		Calculator:   pricing.NewCalculator(cfg.ClampFixedDiscount),
		Idempotency:  d.Idempotency,
		Payments:     d.Payments,
		ValidityDays: cfg.PurchaseValidityDays,
		Log:          d.Log,
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (storefront)
		// ------------------------------
		public := api.Group("/public/:slug")
		{
			public.GET("", tenantHandler.Public)
			public.GET("/packages", packageHandler.ListActive)
			public.GET("/availability", publicHandler.Availability)

			public.POST("/coupons/validate", publicHandler.ValidateCoupon)

			public.POST("/purchases", publicHandler.CreatePurchase)
			public.GET("/purchases", publicHandler.MyPurchases)
			public.GET("/purchases/:id/appointments", publicHandler.PurchaseAppointments)
			public.POST("/purchases/:id/appointments", publicHandler.BookSession)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// OWNER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens), middleware.RequireOwner())
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/tenant", tenantHandler.GetMe)
			secured.PATCH("/me/tenant", tenantHandler.UpdateMe)
			secured.POST("/me/tenant/logo", tenantHandler.UploadLogo)

			secured.GET("/me/packages", packageHandler.List)
			secured.POST("/me/packages", packageHandler.Create)
			secured.PATCH("/me/packages/:id", packageHandler.Update)
			secured.DELETE("/me/packages/:id", packageHandler.Delete)

			secured.GET("/me/coupons", couponHandler.List)
			secured.POST("/me/coupons", couponHandler.Create)
			secured.PATCH("/me/coupons/:id", couponHandler.Update)

			secured.GET("/me/affiliates", affiliateHandler.List)
			secured.POST("/me/affiliates", affiliateHandler.Create)
			secured.PATCH("/me/affiliates/:id", affiliateHandler.Update)
			secured.GET("/me/affiliates/commissions", affiliateHandler.Commissions)

			secured.GET("/me/availability", availabilityHandler.Get)
			secured.PUT("/me/availability", availabilityHandler.Update)
			secured.GET("/me/blocked-dates", availabilityHandler.ListBlocked)
			secured.POST("/me/blocked-dates", availabilityHandler.CreateBlocked)
			secured.DELETE("/me/blocked-dates/:id", availabilityHandler.DeleteBlocked)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// PURCHASES
			// ------------------------------
			secured.GET("/me/purchases", purchaseHandler.List)
			secured.PATCH("/me/purchases/:id/sessions", purchaseHandler.UpdateSessions)
			secured.PATCH("/me/purchases/:id/status", purchaseHandler.UpdateStatus)
			secured.GET("/me/reports/purchases.xlsx", purchaseHandler.Export)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}

package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/brightgive/donorcrm-backend/internal/http/handlers"
	httpMW "github.com/brightgive/donorcrm-backend/internal/http/middleware"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	ContactHandler   *httpH.ContactHandler
	PledgeHandler    *httpH.PledgeHandler
	PaymentHandler   *httpH.PaymentHandler
	DonationHandler  *httpH.DonationHandler
	SolicitorHandler *httpH.SolicitorHandler
	CampaignHandler  *httpH.CampaignHandler
	ReportHandler    *httpH.ReportHandler
	WebhookHandler   *httpH.PayrocWebhookHandler
	AuditHandler     *httpH.AuditHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("donorcrm-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Gateway webhooks authenticate by signature, not by session.
		if cfg.WebhookHandler != nil {
			api.POST("/webhooks/payroc", cfg.WebhookHandler.Receive)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Contacts
		if cfg.ContactHandler != nil {
			protected.POST("/contacts", cfg.ContactHandler.Create)
			protected.GET("/contacts", cfg.ContactHandler.List)
			protected.GET("/contacts/:id", cfg.ContactHandler.Get)
			protected.PUT("/contacts/:id", cfg.ContactHandler.Update)
			protected.DELETE("/contacts/:id", cfg.ContactHandler.Delete)
			protected.GET("/contacts/:id/financial-history", cfg.ContactHandler.FinancialHistory)
		}

		// Pledges
		if cfg.PledgeHandler != nil {
			protected.POST("/pledges", cfg.PledgeHandler.Create)
			protected.GET("/pledges/:id", cfg.PledgeHandler.Get)
			protected.PUT("/pledges/:id", cfg.PledgeHandler.Update)
			protected.DELETE("/pledges/:id", cfg.PledgeHandler.Delete)
			protected.GET("/contacts/:id/pledges", cfg.PledgeHandler.ListByContact)
			protected.POST("/categories", cfg.PledgeHandler.CreateCategory)
			protected.GET("/categories", cfg.PledgeHandler.ListCategories)
		}

		// Payments
		if cfg.PaymentHandler != nil {
			protected.POST("/payments", cfg.PaymentHandler.Record)
			protected.GET("/payments/:id", cfg.PaymentHandler.Get)
			protected.GET("/pledges/:id/payments", cfg.PaymentHandler.ListByPledge)
		}

		// Manual donations
		if cfg.DonationHandler != nil {
			protected.POST("/donations", cfg.DonationHandler.Create)
			protected.GET("/donations/:id", cfg.DonationHandler.Get)
			protected.GET("/contacts/:id/donations", cfg.DonationHandler.ListByContact)
			protected.DELETE("/donations/:id", cfg.DonationHandler.Delete)
		}

		// Solicitors and bonuses
		if cfg.SolicitorHandler != nil {
			protected.POST("/solicitors", cfg.SolicitorHandler.Attach)
			protected.GET("/solicitors", cfg.SolicitorHandler.List)
			protected.GET("/solicitors/:id", cfg.SolicitorHandler.Get)
			protected.DELETE("/solicitors/:id", cfg.SolicitorHandler.Detach)
			protected.POST("/solicitors/:id/bonus-rules", cfg.SolicitorHandler.CreateBonusRule)
			protected.GET("/solicitors/:id/bonus-rules", cfg.SolicitorHandler.ListBonusRules)
			protected.GET("/solicitors/:id/bonus-calculations", cfg.SolicitorHandler.ListBonusCalculations)
		}

		// Campaigns
		if cfg.CampaignHandler != nil {
			protected.POST("/campaigns", cfg.CampaignHandler.Create)
			protected.GET("/campaigns", cfg.CampaignHandler.List)
			protected.GET("/campaigns/:code", cfg.CampaignHandler.GetByCode)
			protected.PUT("/campaigns/:code", cfg.CampaignHandler.Update)
		}

		// Reports
		if cfg.ReportHandler != nil {
			protected.GET("/reports/campaigns/:code", cfg.ReportHandler.CampaignSummary)
			protected.GET("/reports/top-donors", cfg.ReportHandler.TopDonors)
		}
	}

	admin := protected.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		if cfg.ContactHandler != nil {
			admin.POST("/contacts/merge", cfg.ContactHandler.Merge)
		}
		if cfg.PaymentHandler != nil {
			admin.DELETE("/payments/:id", cfg.PaymentHandler.Delete)
		}
		if cfg.AuditHandler != nil {
			admin.GET("/audit-logs", cfg.AuditHandler.List)
		}
	}

	return r
}

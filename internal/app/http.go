package app

import (
	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/http"
	httpH "github.com/brightgive/donorcrm-backend/internal/http/handlers"
	httpMW "github.com/brightgive/donorcrm-backend/internal/http/middleware"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Contact   *httpH.ContactHandler
	Pledge    *httpH.PledgeHandler
	Payment   *httpH.PaymentHandler
	Donation  *httpH.DonationHandler
	Solicitor *httpH.SolicitorHandler
	Campaign  *httpH.CampaignHandler
	Report    *httpH.ReportHandler
	Webhook   *httpH.PayrocWebhookHandler
	Audit     *httpH.AuditHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(log, services.Auth),
		Contact:   httpH.NewContactHandler(log, services.Contact, services.ContactMerge, services.FinancialHistory),
		Pledge:    httpH.NewPledgeHandler(log, services.Pledge),
		Payment:   httpH.NewPaymentHandler(log, services.Payment),
		Donation:  httpH.NewDonationHandler(log, services.Donation),
		Solicitor: httpH.NewSolicitorHandler(log, services.Solicitor, services.Bonus),
		Campaign:  httpH.NewCampaignHandler(log, services.Campaign),
		Report:    httpH.NewReportHandler(log, services.Report),
		Webhook:   httpH.NewPayrocWebhookHandler(log, services.PayrocWebhook),
		Audit:     httpH.NewAuditHandler(log, services.Audit),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: middleware.Auth,

		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		ContactHandler:   handlers.Contact,
		PledgeHandler:    handlers.Pledge,
		PaymentHandler:   handlers.Payment,
		DonationHandler:  handlers.Donation,
		SolicitorHandler: handlers.Solicitor,
		CampaignHandler:  handlers.Campaign,
		ReportHandler:    handlers.Report,
		WebhookHandler:   handlers.Webhook,
		AuditHandler:     handlers.Audit,
	})
}

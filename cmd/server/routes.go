package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"homequote.backend/internal/interfaces/http/handlers"
	"homequote.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	catalogHandler   *handlers.CatalogHandler
	formHandler      *handlers.FormHandler
	paymentHandler   *handlers.PaymentHandler
	postcodeHandler  *handlers.PostcodeHandler
	kandaHandler     *handlers.KandaHandler
	partnerHandler   *handlers.PartnerHandler
	leadHandler      *handlers.LeadHandler
	crmHandler       *handlers.CRMHandler
	authMiddleware   gin.HandlerFunc
	tenantMiddleware gin.HandlerFunc
	partnerStatus    gin.HandlerFunc
	idempotencyTTL   time.Duration
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Auth routes
	auth := r.Group("/auth")
	{
		auth.GET("/callback", d.authHandler.Callback)
		auth.POST("/refresh", d.authHandler.RefreshToken)
		auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		auth.POST("/logout", d.authHandler.Logout)
		auth.GET("/crm/callback", d.crmHandler.Callback)
	}

	api := r.Group("/api")
	api.Use(d.tenantMiddleware)
	{
		// Catalog reads are public, writes are admin only
		api.GET("/addons", d.catalogHandler.ListAddons)
		api.GET("/category-fields", d.catalogHandler.ListCategoryFields)
		api.POST("/category-fields", d.authMiddleware, middleware.RequireAdmin(), d.catalogHandler.CreateCategoryField)
		api.PATCH("/category-fields/reorder", d.authMiddleware, middleware.RequireAdmin(), d.catalogHandler.ReorderCategoryFields)

		// Stateless integrations
		api.POST("/stripe/create-payment-intent",
			middleware.IdempotencyMiddleware("payment_intent", d.idempotencyTTL),
			d.paymentHandler.CreatePaymentIntent)
		api.POST("/kanda/generate-request", d.kandaHandler.GenerateRequest)
		api.GET("/postcode/lookup", d.postcodeHandler.Lookup)

		// Form engine
		forms := api.Group("/forms/:categorySlug")
		{
			forms.GET("/questions", d.formHandler.ListQuestions)
			forms.POST("/visible", d.formHandler.VisibleQuestions)
			forms.POST("/steps/:step/validate", d.formHandler.ValidateStep)
		}

		// Customer submission flow, scoped to the host's partner
		api.GET("/partner/resolve", d.partnerHandler.Resolve)
		api.POST("/leads", middleware.IdempotencyMiddleware("lead_enquiry", d.idempotencyTTL), d.leadHandler.CreateEnquiry)
		leads := api.Group("/leads/:id")
		{
			leads.PATCH("/enquiry", d.leadHandler.UpdateEnquiry)
			leads.PATCH("/survey", d.leadHandler.UpdateSurvey)
			leads.PATCH("/payment", d.leadHandler.UpdatePayment)
		}

		// Partner routes (protected)
		partner := api.Group("/partner")
		partner.Use(d.authMiddleware, middleware.RequirePartner(), d.partnerStatus)
		{
			partner.POST("/onboard", d.partnerHandler.Onboard)
			partner.GET("/settings", d.partnerHandler.GetSettings)
			partner.PUT("/settings", d.partnerHandler.UpdateSettings)
			partner.GET("/snippets", d.partnerHandler.Snippets)
			partner.POST("/domain", d.partnerHandler.SetDomain)
			partner.POST("/domain/verify", d.partnerHandler.VerifyDomain)
			partner.GET("/leads", d.leadHandler.ListLeads)
			partner.GET("/leads/export", d.leadHandler.ExportLeads)
		}

		crm := api.Group("/crm")
		crm.Use(d.authMiddleware, middleware.RequirePartner(), d.partnerStatus)
		{
			crm.GET("/connect", d.crmHandler.Connect)
			crm.GET("/custom-fields", d.crmHandler.CustomFields)
			crm.GET("/pipelines", d.crmHandler.Pipelines)
			crm.GET("/field-mappings", d.crmHandler.FieldMappings)
			crm.PUT("/field-mappings", d.crmHandler.SaveFieldMappings)
		}

		// Admin routes (protected)
		admin := api.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/questions", d.formHandler.AdminListQuestions)
			admin.POST("/questions", d.formHandler.CreateQuestion)
			admin.PUT("/questions/:id", d.formHandler.UpdateQuestion)
			admin.DELETE("/questions/:id", d.formHandler.DeleteQuestion)

			admin.GET("/partners", d.partnerHandler.ListPartners)
			admin.PUT("/partners/:id/status", d.partnerHandler.UpdatePartnerStatus)
		}
	}
}

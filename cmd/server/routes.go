package main

import (
	"github.com/gin-gonic/gin"
	"vendor-pay.backend/internal/interfaces/http/handlers"
	"vendor-pay.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	vendorHandler       *handlers.VendorHandler
	subscriptionHandler *handlers.SubscriptionHandler
	orderHandler        *handlers.OrderHandler
	payoutHandler       *handlers.PayoutHandler
	adminPayoutHandler  *handlers.AdminPayoutHandler
	trialHandler        *handlers.TrialHandler
	reportHandler       *handlers.ReportHandler
	authMiddleware      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
		}

		// Plan catalog (public)
		plans := v1.Group("/plans")
		{
			plans.GET("", d.subscriptionHandler.ListPlans)
		}

		// Trial routes (public, called during vendor signup)
		trials := v1.Group("/trials")
		{
			trials.POST("/check", d.trialHandler.CheckEligibility)
			trials.POST("", d.trialHandler.Signup)
		}

		// Vendor routes (protected)
		vendors := v1.Group("/vendors")
		vendors.Use(d.authMiddleware)
		{
			vendors.POST("/apply", d.vendorHandler.Apply)
			vendors.GET("/me", d.vendorHandler.GetMe)
			vendors.GET("/me/orders", middleware.RequireVendor(), d.orderHandler.ListMine)
		}

		// Subscription routes (protected, vendor only)
		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(d.authMiddleware, middleware.RequireVendor())
		{
			subscriptions.POST("", d.subscriptionHandler.Subscribe)
			subscriptions.DELETE("/:id", d.subscriptionHandler.Cancel)
		}

		// Order routes (protected)
		orders := v1.Group("/orders")
		orders.Use(d.authMiddleware)
		{
			orders.POST("", middleware.IdempotencyMiddleware(), d.orderHandler.Create)
			orders.GET("/:id", d.orderHandler.Get)
		}

		// Payout routes (protected, vendor only)
		payouts := v1.Group("/payouts")
		payouts.Use(d.authMiddleware, middleware.RequireVendor())
		{
			payouts.GET("/balance", d.payoutHandler.GetBalance)
			payouts.POST("", middleware.IdempotencyMiddleware(), d.payoutHandler.Request)
			payouts.GET("/:id", d.payoutHandler.Get)
			payouts.GET("", d.payoutHandler.List)
		}

		// Vendor-facing reports (protected, vendor only)
		reports := v1.Group("/reports")
		reports.Use(d.authMiddleware, middleware.RequireVendor())
		{
			reports.GET("/vendors/me", d.reportHandler.MySummary)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware)
		{
			admin.GET("/vendors", middleware.RequireAdmin(), d.vendorHandler.List)
			admin.PATCH("/vendors/:id/status", middleware.RequireAdmin(), d.vendorHandler.UpdateStatus)

			admin.POST("/payouts/:id/process", middleware.RequireFinance(), d.adminPayoutHandler.Process)
			admin.PATCH("/payouts/:id", middleware.RequireFinance(), d.adminPayoutHandler.Update)
			admin.DELETE("/payouts/:id", middleware.RequireFinance(), d.adminPayoutHandler.Delete)

			admin.GET("/reports/vendors/:id", middleware.RequireOperations(), d.reportHandler.VendorSummary)
			admin.GET("/reports/platform", middleware.RequireOperations(), d.reportHandler.PlatformSummary)
		}
	}
}

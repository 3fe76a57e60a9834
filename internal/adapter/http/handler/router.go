package handler

import (
	"billing-core/internal/adapter/http/middleware"
	redisStore "billing-core/internal/adapter/storage/redis"
	"billing-core/internal/core/ports"
	"billing-core/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Orchestrator   ports.Orchestrator
	PolicyRegistry ports.PolicyRegistry
	AuditSvc       ports.AuditService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(metrics.Middleware())

	// Health check verifies the storage backend and cache
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", metrics.Handler())

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	billingHandler := NewBillingHandler(deps.Orchestrator)
	billing := r.Group("/billing")
	{
		billing.POST("/calculate", rl("billing"), billingHandler.Calculate)
	}

	subscriptionHandler := NewSubscriptionHandler(deps.Orchestrator)
	subscription := r.Group("/subscription")
	{
		subscription.POST("/create", rl("subscription"), subscriptionHandler.Create)
		subscription.POST("/renew", rl("subscription"), subscriptionHandler.Renew)
		subscription.POST("/upgrade", rl("subscription"), subscriptionHandler.Upgrade)
		subscription.POST("/cancel", rl("subscription"), subscriptionHandler.Cancel)
		subscription.POST("/boundary", rl("subscription"), subscriptionHandler.Boundary)
		subscription.GET("/:accountId", rl("subscription"), subscriptionHandler.Get)
	}

	activityHandler := NewActivityHandler(deps.Orchestrator)
	activity := r.Group("/activity")
	{
		activity.POST("/charge", rl("activity"), activityHandler.Charge)
	}

	ledgerHandler := NewLedgerHandler(deps.Orchestrator)
	r.GET("/ledger/:accountId", rl("ledger"), ledgerHandler.List)

	policyHandler := NewPolicyHandler(deps.PolicyRegistry)
	policy := r.Group("/policy")
	{
		policy.POST("", rl("policy"), policyHandler.Create)
		policy.GET("", rl("policy"), policyHandler.List)
		policy.POST("/deprecate", rl("policy"), policyHandler.Deprecate)
		policy.POST("/offer", rl("policy"), policyHandler.CreateOffer)
	}

	walletHandler := NewWalletHandler(deps.Orchestrator)
	wallet := r.Group("/wallet")
	{
		wallet.POST("", rl("wallet"), walletHandler.Create)
		wallet.POST("/credit", rl("wallet"), walletHandler.Credit)
		wallet.GET("/:walletId", rl("wallet"), walletHandler.Get)
	}

	auditHandler := NewAuditHandler(deps.AuditSvc)
	audit := r.Group("/audit")
	{
		audit.GET("/verify/:walletId", rl("audit"), auditHandler.Verify)
		audit.POST("/snapshot", rl("audit"), auditHandler.Snapshot)
	}

	return r
}

package handler

import (
	"net/http"

	"fulfillment-ledger/internal/adapter/http/middleware"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	OrderSvc       ports.OrderService
	LedgerSvc      ports.LedgerService
	ArrivalSvc     ports.ArrivalService
	Sessions       ports.ArrivalSessions // nil = no background arrival sessions
	TokenSvc       ports.TokenService
	RateLimiter    middleware.Limiter // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	HTTPMetrics    middleware.HTTPObserver // nil = no HTTP metrics
	MetricsPath    string
	MetricsHandler http.Handler // nil = /metrics not served
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	// Helper: return rate limiter middleware if a store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		rule, ok := deps.RateLimitRules[group]
		if deps.RateLimiter == nil || !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.TokenSvc, deps.Logger))

	orderHandler := NewOrderHandler(deps.OrderSvc)
	orders := v1.Group("/orders")
	{
		orders.GET("/actionable", rl("reads"), orderHandler.Actionable)
		orders.GET("/:id", rl("reads"), orderHandler.Get)
		orders.GET("/:id/history", rl("reads"), orderHandler.History)
		orders.POST("/:id/transitions", rl("transitions"), orderHandler.Transition)
		orders.POST("/:id/advance", rl("transitions"), orderHandler.Advance)
	}

	walletHandler := NewWalletHandler(deps.LedgerSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.GET("/:kind/summary", rl("reads"), walletHandler.Summary)
		wallets.GET("/:kind/transactions", rl("reads"), walletHandler.Transactions)
	}

	admin := v1.Group("/admin/wallets", middleware.RequireRole(domain.RoleAdmin), rl("admin"))
	{
		admin.POST("/adjust", walletHandler.Adjust)
		admin.POST("/settle", walletHandler.Settle)
		admin.PUT("/customer/:owner/min-usage", walletHandler.SetMinUsage)
		admin.GET("/:kind/:owner/reconcile", walletHandler.Reconcile)
	}

	notificationHandler := NewNotificationHandler(deps.ArrivalSvc, deps.Sessions)
	notifications := v1.Group("/notifications", middleware.RequireRole(domain.RoleDeliveryStaff, domain.RoleSeller))
	{
		notifications.GET("", rl("reads"), notificationHandler.Poll)
		notifications.POST("/:order_id/accept", rl("transitions"), notificationHandler.Accept)
		notifications.POST("/:order_id/dismiss", rl("transitions"), notificationHandler.Dismiss)
	}

	return r
}

package rest

import (
	"net/http"

	"lavka-be/internal/logger"
	"lavka-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the HTTP surface. Webhook aside, everything under
// /api runs through the optional-auth middleware; the protected
// groups additionally demand a valid token.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger.L()))
	r.Use(middleware.Metrics())
	r.Use(otelgin.Middleware("lavka-be"))
	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.PrometheusHandler())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/me", middleware.RequireAuth(), h.me)
	}

	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	adminProducts := api.Group("/admin/products", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		adminProducts.POST("", h.createProduct)
		adminProducts.PATCH("/:id", h.updateProduct)
		adminProducts.DELETE("/:id", h.deleteProduct)
	}

	cartGroup := api.Group("/cart", middleware.RequireAuth())
	{
		cartGroup.GET("", h.getCart)
		cartGroup.POST("/items", h.addCartItem)
		cartGroup.PATCH("/items/:id", h.updateCartItem)
		cartGroup.DELETE("/items/:id", h.removeCartItem)
		cartGroup.DELETE("", h.clearCart)
	}

	promoGroup := api.Group("/promo")
	{
		promoGroup.POST("/validate", h.validatePromo)
		promoGroup.GET("/active", h.activePromo)
	}

	adminPromos := api.Group("/admin/promo", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		adminPromos.GET("", h.listPromos)
		adminPromos.POST("", h.createPromo)
		adminPromos.PATCH("/:id", h.updatePromo)
		adminPromos.DELETE("/:id", h.deletePromo)
	}

	paymentGroup := api.Group("/payment")
	{
		paymentGroup.POST("/create", middleware.RequireAuth(), h.createPayment)
		paymentGroup.GET("/status", middleware.RequireAuth(), h.paymentStatus)
		paymentGroup.GET("/success", middleware.RequireAuth(), h.paymentSuccess)
		// The gateway calls this one; it carries no user token.
		paymentGroup.POST("/webhook", h.handleWebhook)
	}

	ordersGroup := api.Group("/orders", middleware.RequireAuth())
	{
		ordersGroup.GET("", h.listOrders)
		ordersGroup.GET("/:id", h.getOrder)
	}

	return r
}

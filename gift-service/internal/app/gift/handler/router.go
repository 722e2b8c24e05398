package handler

import (
	"net/http"

	"giftshop/pkg/logger"
	"giftshop/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "gift-service"

// Handlers все обработчики сервиса
type Handlers struct {
	Category *CategoryHandler
	Product  *ProductHandler
	Member   *MemberHandler
	Wishlist *WishlistHandler
	Auth     *AuthMiddleware
}

// SetupRoutes настраивает все маршруты Gift Service
func SetupRoutes(h Handlers) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware("/health", "/metrics"))

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.GetCategories)
		categories.POST("", h.Category.AddCategory)
		categories.PUT("/:id", h.Category.EditCategory)
		categories.DELETE("/:id", h.Category.RemoveCategory)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/:id", h.Product.GetProduct)
		products.POST("", h.Product.AddProduct)
		products.PUT("/:id", h.Product.EditProduct)
		products.DELETE("/:id", h.Product.RemoveProduct)

		products.GET("/:id/options", h.Product.GetOptions)
		products.POST("/:id/options", h.Product.AddOption)
		products.PUT("/:id/options/:optionId", h.Product.EditOption)
		products.DELETE("/:id/options/:optionId", h.Product.RemoveOption)
	}

	members := api.Group("/members")
	{
		members.POST("/register", h.Member.Register)
		members.POST("/login", h.Member.Login)

		// Защищенные эндпоинты (требуют токен)
		protected := members.Group("")
		protected.Use(h.Auth.Authenticate())
		{
			protected.POST("/logout", h.Member.Logout)
			protected.GET("/me", h.Member.GetMe)
		}
	}

	wishes := api.Group("/wishes")
	wishes.Use(h.Auth.Authenticate())
	{
		wishes.GET("", h.Wishlist.GetWishes)
		wishes.POST("", h.Wishlist.AddWish)
		wishes.DELETE("/:productId", h.Wishlist.RemoveWish)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "message": "Not Found"})
	})

	return router
}

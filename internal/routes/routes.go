package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/cache"
	"backoffice/internal/events"
	"backoffice/internal/handlers"
	"backoffice/internal/mailer"
	"backoffice/internal/metrics"
	"backoffice/internal/models"
	"backoffice/internal/repository"
	"backoffice/internal/services"
)

// Deps carries the shared infrastructure the routes are built on. Everything
// is injected; no package-level state.
type Deps struct {
	DB        *mongo.Database
	Cache     cache.Store
	Publisher events.Publisher
	Mailer    mailer.Mailer
}

// RegisterRoutes builds repositories, services and handlers and mounts the
// v1 API.
func RegisterRoutes(router *gin.Engine, deps Deps) {
	registerValidations()

	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	bundleRepo := repository.NewBundleRepository(deps.DB)
	productRepo := repository.NewProductRepository(deps.DB)
	customerRepo := repository.NewCustomerRepository(deps.DB)
	orderRepo := repository.NewOrderRepository(deps.DB)
	posRepo := repository.NewPOSRepository(deps.DB)
	invoiceRepo := repository.NewInvoiceRepository(deps.DB)
	notificationRepo := repository.NewNotificationRepository(deps.DB)
	storeRepo := repository.NewStoreRepository(deps.DB)

	enricher := services.NewEnricher(productRepo)
	bundleService := services.NewBundleService(bundleRepo, enricher)
	orderService := services.NewOrderService(orderRepo, bundleRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, orderRepo)
	posService := services.NewPOSService(posRepo)
	notificationService := services.NewNotificationService(notificationRepo, deps.Publisher, deps.Mailer)

	bundles := handlers.BundleHandler{Service: bundleService, Repo: bundleRepo, Cache: deps.Cache}
	bundleWatch := handlers.BundleWatchHandler{Repo: bundleRepo}
	products := handlers.ProductHandler{Repo: productRepo, Cache: deps.Cache}
	customers := handlers.CustomerHandler{Repo: customerRepo}
	orders := handlers.OrderHandler{Service: orderService, Repo: orderRepo, Invoices: invoiceService}
	pos := handlers.POSHandler{Service: posService, Repo: posRepo}
	invoices := handlers.InvoiceHandler{Repo: invoiceRepo}
	notifications := handlers.NotificationHandler{Service: notificationService, Repo: notificationRepo}
	stores := handlers.StoreHandler{Repo: storeRepo}

	v1 := router.Group("/v1")
	{
		v1.POST("/bundles", bundles.Create)
		v1.POST("/bundles/validate", bundles.Validate)
		v1.GET("/bundles", bundles.List)
		v1.GET("/bundles/watch", bundleWatch.WatchMany)
		v1.GET("/bundles/:id", bundles.Get)
		v1.GET("/bundles/:id/watch", bundleWatch.WatchOne)
		v1.PATCH("/bundles/:id", bundles.Update)
		v1.DELETE("/bundles/:id", bundles.Delete)
		v1.POST("/bundles/:id/views", bundles.TrackView)

		v1.POST("/products", products.Create)
		v1.GET("/products", products.List)
		v1.GET("/products/:id", products.Get)
		v1.PATCH("/products/:id", products.Update)
		v1.DELETE("/products/:id", products.Delete)

		v1.POST("/customers", customers.Create)
		v1.GET("/customers", customers.List)
		v1.GET("/customers/:id", customers.Get)
		v1.PATCH("/customers/:id", customers.Update)
		v1.DELETE("/customers/:id", customers.Delete)

		v1.POST("/orders", orders.Create)
		v1.GET("/orders", orders.List)
		v1.GET("/orders/:id", orders.Get)
		v1.PATCH("/orders/:id/status", orders.UpdateStatus)
		v1.POST("/orders/:id/invoice", orders.GenerateInvoice)

		v1.POST("/pos/sessions", pos.Open)
		v1.GET("/pos/sessions", pos.List)
		v1.GET("/pos/sessions/:id", pos.Get)
		v1.POST("/pos/sessions/:id/transactions", pos.RecordTransaction)
		v1.POST("/pos/sessions/:id/close", pos.Close)

		v1.GET("/invoices", invoices.List)
		v1.GET("/invoices/:id", invoices.Get)
		v1.PATCH("/invoices/:id/status", invoices.UpdateStatus)

		v1.POST("/notifications", notifications.Create)
		v1.GET("/notifications", notifications.List)
		v1.POST("/notifications/:id/read", notifications.MarkRead)

		v1.POST("/stores", stores.Create)
		v1.GET("/stores", stores.List)
		v1.GET("/stores/:id", stores.Get)
		v1.PATCH("/stores/:id", stores.Update)
	}
}

// registerValidations adds the discount type check to gin's binding
// validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("discounttype", func(fl validator.FieldLevel) bool {
		switch models.DiscountType(fl.Field().String()) {
		case models.DiscountPercentage, models.DiscountFixed, models.DiscountBundlePrice:
			return true
		}
		return false
	})
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "invoicing-backend/docs"
	"invoicing-backend/internal/gateway"
	"invoicing-backend/internal/handlers"
	"invoicing-backend/internal/repository"
	"invoicing-backend/internal/services"
)

// RegisterRoutes wires repositories, services and handlers onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *zap.Logger) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	gw := gateway.NewSimulated(log)

	invoiceService := services.NewInvoiceService(invoiceRepo, log)
	paymentService := services.NewPaymentService(paymentRepo, invoiceRepo, gw, db, log)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Swagger documentation endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	invoices := api.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.GetByID)
		invoices.GET("/number/:invoiceNumber", invoiceHandler.GetByNumber)
		invoices.POST("", invoiceHandler.Create)
		invoices.PUT("/:id", invoiceHandler.Update)
		invoices.DELETE("/:id", invoiceHandler.Delete)
	}

	payments := api.Group("/payments")
	{
		payments.GET("", paymentHandler.List)
		payments.GET("/:id", paymentHandler.GetByID)
		payments.GET("/transaction/:transactionId", paymentHandler.GetByTransactionID)
		payments.GET("/invoice/:invoiceId", paymentHandler.ListByInvoice)
		payments.POST("", paymentHandler.Create)
		payments.POST("/process", paymentHandler.Process)
		payments.PUT("/:id/status", paymentHandler.UpdateStatus)
		payments.POST("/:id/refund", paymentHandler.Refund)
		payments.DELETE("/:id", paymentHandler.Delete)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	handler "boleto-management-backend/internal/handlers"
	"boleto-management-backend/internal/repository"
	"boleto-management-backend/internal/services/importer"
	"boleto-management-backend/internal/services/reconciler"
	"boleto-management-backend/internal/services/report"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *zap.Logger) {
	loteRepo := repository.NewLoteRepository(db)
	boletoRepo := repository.NewBoletoRepository(db)

	importService := importer.NewService(loteRepo, boletoRepo, db, log)
	reconcileService := reconciler.NewService(boletoRepo, reconciler.PDFExtractor{}, "pdfs", log)
	reportService := report.NewService(boletoRepo)

	boletoHandler := handler.NewBoletoHandler(importService, reconcileService, reportService, log)
	loteHandler := handler.NewLoteHandler(loteRepo, log)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	boletos := r.Group("/boletos")
	{
		boletos.POST("/import", boletoHandler.Import)
		boletos.POST("/uploadpdf", boletoHandler.UploadPDF)
		boletos.GET("", boletoHandler.List)
	}

	r.GET("/lotes", loteHandler.List)
}

package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"boleto-management-backend/internal/repository"
	"boleto-management-backend/internal/services/importer"
	"boleto-management-backend/internal/services/reconciler"
	"boleto-management-backend/internal/services/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const uploadDir = "uploads"

type BoletoHandler struct {
	importer   *importer.Service
	reconciler *reconciler.Service
	reports    *report.Service
	log        *zap.Logger
}

func NewBoletoHandler(
	imp *importer.Service,
	rec *reconciler.Service,
	rep *report.Service,
	log *zap.Logger,
) *BoletoHandler {
	return &BoletoHandler{importer: imp, reconciler: rec, reports: rep, log: log}
}

// Import receives the boletos CSV, stores it under uploads/ and runs the
// import pipeline. The service removes the upload on success; failure paths
// are cleaned up here.
func (h *BoletoHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	dst := filepath.Join(uploadDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		h.log.Error("saving uploaded csv", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao importar boletos"})
		return
	}

	boletos, err := h.importer.ImportFile(dst, fileHeader.Filename)
	if err != nil {
		h.removeUpload(dst)

		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
			return
		}
		h.log.Error("importing boletos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao importar boletos"})
		return
	}

	c.JSON(http.StatusOK, boletos)
}

// UploadPDF receives the reconciliation document and responds with the zip of
// regenerated boletos as a downloadable attachment.
func (h *BoletoHandler) UploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	dst := filepath.Join(uploadDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		h.log.Error("saving uploaded pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar os PDFs"})
		return
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		h.removeUpload(dst)
		h.log.Error("reading uploaded pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar os PDFs"})
		return
	}

	result, err := h.reconciler.Reconcile(data, dst)
	if err != nil {
		h.log.Error("reconciling pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar os PDFs"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Zip)
}

// List returns boletos filtered by the query parameters, either as JSON or,
// with relatorio=1, as a base64-encoded tabular PDF.
func (h *BoletoHandler) List(c *gin.Context) {
	filter := repository.BoletoFilter{
		NomeSacado:    c.Query("nome"),
		OrderBy:       c.Query("orderBy"),
		SortDirection: c.Query("sortDirection"),
	}

	if raw := c.Query("valor_inicial"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valor_inicial inválido"})
			return
		}
		filter.ValorInicial = &v
	}
	if raw := c.Query("valor_final"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valor_final inválido"})
			return
		}
		filter.ValorFinal = &v
	}
	if raw := c.Query("id_lote"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id_lote inválido"})
			return
		}
		filter.IDLote = &id
	}

	if c.Query("relatorio") == "1" {
		b64, err := h.reports.RenderPDFBase64(filter)
		if err != nil {
			h.replySearchError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"base64": b64})
		return
	}

	boletos, err := h.reports.Search(filter)
	if err != nil {
		h.replySearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, boletos)
}

func (h *BoletoHandler) replySearchError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrCampoOrdenacao) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Error("searching boletos", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar boletos"})
}

func (h *BoletoHandler) removeUpload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.log.Warn("removing upload", zap.String("path", path), zap.Error(err))
	}
}

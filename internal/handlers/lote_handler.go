package handler

import (
	"net/http"

	"boleto-management-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoteHandler struct {
	lotes *repository.LoteRepository
	log   *zap.Logger
}

func NewLoteHandler(lotes *repository.LoteRepository, log *zap.Logger) *LoteHandler {
	return &LoteHandler{lotes: lotes, log: log}
}

// List returns all lotes.
func (h *LoteHandler) List(c *gin.Context) {
	lotes, err := h.lotes.GetAll()
	if err != nil {
		h.log.Error("listing lotes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar lotes"})
		return
	}
	c.JSON(http.StatusOK, lotes)
}

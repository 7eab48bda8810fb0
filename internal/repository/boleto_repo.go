package repository

import (
	"errors"
	"fmt"
	"strings"

	"boleto-management-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrCampoOrdenacao is returned when the orderBy directive names a column
// that boletos cannot be ordered by.
var ErrCampoOrdenacao = errors.New("invalid order field")

// orderableColumns is the whitelist for BoletoFilter.OrderBy. The ordering
// directive comes straight from a query parameter and must never reach the
// ORDER BY clause unchecked.
var orderableColumns = map[string]bool{
	"id":              true,
	"nome_sacado":     true,
	"id_lote":         true,
	"valor":           true,
	"linha_digitavel": true,
	"criado_em":       true,
}

// BoletoFilter carries the optional report filters. Nil/empty fields are not
// applied; ValorInicial and ValorFinal are additive, narrowing to a closed
// interval when both are present.
type BoletoFilter struct {
	NomeSacado    string
	ValorInicial  *decimal.Decimal
	ValorFinal    *decimal.Decimal
	IDLote        *uuid.UUID
	OrderBy       string
	SortDirection string
}

type BoletoRepository struct {
	db *gorm.DB
}

func NewBoletoRepository(db *gorm.DB) *BoletoRepository {
	return &BoletoRepository{db: db}
}

func (r *BoletoRepository) DB() *gorm.DB {
	return r.db
}

// Search runs a single filtered, ordered query.
func (r *BoletoRepository) Search(filter BoletoFilter) ([]models.Boleto, error) {
	query := r.db.Model(&models.Boleto{})

	if filter.NomeSacado != "" {
		query = query.Where("nome_sacado = ?", filter.NomeSacado)
	}
	if filter.ValorInicial != nil {
		query = query.Where("valor >= ?", *filter.ValorInicial)
	}
	if filter.ValorFinal != nil {
		query = query.Where("valor <= ?", *filter.ValorFinal)
	}
	if filter.IDLote != nil {
		query = query.Where("id_lote = ?", *filter.IDLote)
	}

	if filter.OrderBy != "" {
		if !orderableColumns[filter.OrderBy] {
			return nil, fmt.Errorf("%w: %q", ErrCampoOrdenacao, filter.OrderBy)
		}
		direction := "ASC"
		if strings.EqualFold(filter.SortDirection, "desc") {
			direction = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + direction)
	}

	var boletos []models.Boleto
	err := query.Find(&boletos).Error
	return boletos, err
}

// FindBySacadoNames returns all boletos whose holder name exactly matches one
// of the given names. Matching is record-driven set membership, never fuzzy.
func (r *BoletoRepository) FindBySacadoNames(nomes []string) ([]models.Boleto, error) {
	if len(nomes) == 0 {
		return nil, nil
	}
	var boletos []models.Boleto
	err := r.db.Where("nome_sacado IN ?", nomes).Find(&boletos).Error
	return boletos, err
}

// BulkCreateTx inserts all boletos in a single statement on the given
// transaction handle.
func (r *BoletoRepository) BulkCreateTx(tx *gorm.DB, boletos []*models.Boleto) error {
	if len(boletos) == 0 {
		return nil
	}
	return tx.Create(boletos).Error
}

package repository

import (
	"boleto-management-backend/internal/models"

	"gorm.io/gorm"
)

type LoteRepository struct {
	db *gorm.DB
}

func NewLoteRepository(db *gorm.DB) *LoteRepository {
	return &LoteRepository{db: db}
}

// Expose DB if needed
func (r *LoteRepository) DB() *gorm.DB {
	return r.db
}

// FindByNomes returns the lotes whose normalized code is in nomes.
func (r *LoteRepository) FindByNomes(nomes []string) ([]models.Lote, error) {
	if len(nomes) == 0 {
		return nil, nil
	}
	var lotes []models.Lote
	err := r.db.Where("nome IN ?", nomes).Find(&lotes).Error
	return lotes, err
}

// BulkCreate inserts all lotes in a single statement. IDs are assigned by the
// constructor, so the passed slice already carries the final identifiers on
// success. A unique violation on nome surfaces as gorm.ErrDuplicatedKey.
func (r *LoteRepository) BulkCreate(lotes []*models.Lote) error {
	if len(lotes) == 0 {
		return nil
	}
	return r.db.Create(lotes).Error
}

func (r *LoteRepository) GetAll() ([]models.Lote, error) {
	var lotes []models.Lote
	err := r.db.Find(&lotes).Error
	return lotes, err
}

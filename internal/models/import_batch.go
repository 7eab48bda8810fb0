package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportBatch is the audit record of one CSV import run. One row is written
// per run, whether the import committed or rolled back.
type ImportBatch struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Filename         string         `json:"filename"`
	TotalLinhas      int            `json:"total_linhas"`
	BoletosInseridos int            `json:"boletos_inseridos"`
	LotesCriados     int            `json:"lotes_criados"`
	Status           string         `gorm:"index" json:"status"`
	Detalhes         datatypes.JSON `json:"detalhes,omitempty"`
	CriadoEm         time.Time      `json:"criado_em"`
	ConcluidoEm      *time.Time     `json:"concluido_em,omitempty"`
}

func NewImportBatch(filename string) *ImportBatch {
	return &ImportBatch{
		ID:       uuid.New(),
		Filename: filename,
		Status:   "processing",
		CriadoEm: time.Now(),
	}
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CodigoLoteWidth is the canonical width of a lote code. Codes shorter than
// this are left-padded with zeros so that lookup and creation always target
// the same key.
const CodigoLoteWidth = 4

type Lote struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nome     string    `gorm:"size:100;not null;uniqueIndex" json:"nome"`
	Ativo    bool      `json:"ativo"`
	CriadoEm time.Time `json:"criado_em"`
}

func NewLote(codigo string) *Lote {
	return &Lote{
		ID:       uuid.New(),
		Nome:     NormalizeCodigo(codigo),
		Ativo:    true,
		CriadoEm: time.Now(),
	}
}

// NormalizeCodigo left-pads a raw lote code to CodigoLoteWidth with zeros.
// Idempotent: normalizing an already normalized code is a no-op.
func NormalizeCodigo(codigo string) string {
	codigo = strings.TrimSpace(codigo)
	if len(codigo) >= CodigoLoteWidth {
		return codigo
	}
	return strings.Repeat("0", CodigoLoteWidth-len(codigo)) + codigo
}

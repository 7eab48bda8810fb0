package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Boleto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	NomeSacado     string          `gorm:"size:255;index" json:"nome_sacado"`
	IDLote         uuid.UUID       `gorm:"type:uuid;not null;index" json:"id_lote"`
	Lote           *Lote           `gorm:"foreignKey:IDLote" json:"-"`
	Valor          decimal.Decimal `gorm:"type:numeric;not null" json:"valor"`
	LinhaDigitavel string          `gorm:"size:255" json:"linha_digitavel"`
	Ativo          bool            `json:"ativo"`
	CriadoEm       time.Time       `json:"criado_em"`
}

func NewBoleto(nomeSacado string, idLote uuid.UUID, valor decimal.Decimal, linhaDigitavel string) *Boleto {
	return &Boleto{
		ID:             uuid.New(),
		NomeSacado:     nomeSacado,
		IDLote:         idLote,
		Valor:          valor,
		LinhaDigitavel: linhaDigitavel,
		Ativo:          true,
		CriadoEm:       time.Now(),
	}
}

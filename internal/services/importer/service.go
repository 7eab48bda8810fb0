package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"boleto-management-backend/internal/models"
	"boleto-management-backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrLoteNaoResolvido means a row's normalized code had no entry in the
// resolved lote mapping. The resolver covers every code from the same row
// set, so hitting this is a defect, not an input error.
var ErrLoteNaoResolvido = errors.New("lote not resolved for import row")

type Service struct {
	lotes   *repository.LoteRepository
	boletos *repository.BoletoRepository
	db      *gorm.DB
	log     *zap.Logger
}

func NewService(
	lotes *repository.LoteRepository,
	boletos *repository.BoletoRepository,
	db *gorm.DB,
	log *zap.Logger,
) *Service {
	return &Service{lotes: lotes, boletos: boletos, db: db, log: log}
}

// ImportFile runs the whole pipeline for an uploaded CSV: parse, resolve
// lotes, bulk-insert boletos. The uploaded file is removed on success only;
// on failure the caller decides what to do with it. An ImportBatch audit row
// records the run either way.
func (s *Service) ImportFile(path, filename string) ([]models.Boleto, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	rows, parseErr := ParseBoletosCSV(f)
	f.Close()
	if parseErr != nil {
		return nil, parseErr
	}

	batch := models.NewImportBatch(filename)
	batch.TotalLinhas = len(rows)
	if err := s.db.Create(batch).Error; err != nil {
		s.log.Warn("creating import batch record", zap.Error(err))
	}

	codigos := make([]string, len(rows))
	for i, row := range rows {
		codigos[i] = row.Unidade
	}

	nomes := distinctNormalized(codigos)

	lotesAntes := 0
	lotes, err := s.ResolveLotes(codigos)
	if err != nil {
		s.finishBatch(batch, "failed", 0, 0, nomes, err)
		return nil, err
	}
	for _, l := range lotes {
		if l.CriadoEm.Before(batch.CriadoEm) {
			lotesAntes++
		}
	}

	inseridos, err := s.ImportBoletos(rows, lotes)
	if err != nil {
		s.finishBatch(batch, "failed", 0, len(lotes)-lotesAntes, nomes, err)
		return nil, err
	}
	s.finishBatch(batch, "completed", len(inseridos), len(lotes)-lotesAntes, nomes, nil)

	if err := os.Remove(path); err != nil {
		s.log.Warn("removing imported file", zap.String("path", path), zap.Error(err))
	}

	return inseridos, nil
}

// ResolveLotes maps every distinct normalized code in codigos to a lote,
// creating the missing ones in one bulk insert. The input is the raw per-row
// sequence and may repeat codes. When a concurrent import wins the race on a
// new code, the bulk create fails with gorm.ErrDuplicatedKey; the resolver
// re-reads and retries the remaining missing set once before giving up.
func (s *Service) ResolveLotes(codigos []string) (map[string]models.Lote, error) {
	nomes := distinctNormalized(codigos)

	mapa, err := s.findLotes(nomes)
	if err != nil {
		return nil, err
	}
	missing := missingNomes(nomes, mapa)
	if len(missing) == 0 {
		return mapa, nil
	}

	if err := s.createLotes(missing, mapa); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		s.log.Warn("lote already exists, re-resolving", zap.Strings("nomes", missing))
		mapa, err = s.findLotes(nomes)
		if err != nil {
			return nil, err
		}
		if missing = missingNomes(nomes, mapa); len(missing) > 0 {
			if err := s.createLotes(missing, mapa); err != nil {
				return nil, err
			}
		}
	}

	return mapa, nil
}

// ImportBoletos builds one pending boleto per row using the resolved lote
// mapping and persists them all inside a single transaction. Either every row
// commits or none does.
func (s *Service) ImportBoletos(rows []ImportRow, lotes map[string]models.Lote) ([]models.Boleto, error) {
	pendentes := make([]*models.Boleto, len(rows))
	for i, row := range rows {
		lote, ok := lotes[models.NormalizeCodigo(row.Unidade)]
		if !ok {
			return nil, fmt.Errorf("%w: unidade %q", ErrLoteNaoResolvido, row.Unidade)
		}
		pendentes[i] = models.NewBoleto(row.Nome, lote.ID, row.Valor, row.LinhaDigitavel)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.boletos.BulkCreateTx(tx, pendentes)
	})
	if err != nil {
		return nil, fmt.Errorf("bulk inserting boletos: %w", err)
	}

	inseridos := make([]models.Boleto, len(pendentes))
	for i, b := range pendentes {
		inseridos[i] = *b
	}
	return inseridos, nil
}

func (s *Service) findLotes(nomes []string) (map[string]models.Lote, error) {
	existentes, err := s.lotes.FindByNomes(nomes)
	if err != nil {
		return nil, fmt.Errorf("querying lotes: %w", err)
	}
	mapa := make(map[string]models.Lote, len(nomes))
	for _, l := range existentes {
		mapa[l.Nome] = l
	}
	return mapa, nil
}

func (s *Service) createLotes(nomes []string, mapa map[string]models.Lote) error {
	novos := make([]*models.Lote, len(nomes))
	for i, nome := range nomes {
		novos[i] = models.NewLote(nome)
	}
	if err := s.lotes.BulkCreate(novos); err != nil {
		return fmt.Errorf("creating lotes: %w", err)
	}
	for _, l := range novos {
		mapa[l.Nome] = *l
	}
	return nil
}

func (s *Service) finishBatch(batch *models.ImportBatch, status string, inseridos, lotesCriados int, nomes []string, cause error) {
	detalhes := map[string]any{"lotes": nomes}
	if cause != nil {
		detalhes["erro"] = cause.Error()
	}
	raw, _ := json.Marshal(detalhes)

	now := time.Now()
	err := s.db.Model(batch).Updates(map[string]any{
		"status":            status,
		"boletos_inseridos": inseridos,
		"lotes_criados":     lotesCriados,
		"detalhes":          datatypes.JSON(raw),
		"concluido_em":      &now,
	}).Error
	if err != nil {
		s.log.Warn("updating import batch record", zap.Error(err))
	}
}

// distinctNormalized normalizes all codes and drops repeats, keeping first
// occurrence order.
func distinctNormalized(codigos []string) []string {
	seen := make(map[string]bool, len(codigos))
	var nomes []string
	for _, c := range codigos {
		nome := models.NormalizeCodigo(c)
		if !seen[nome] {
			seen[nome] = true
			nomes = append(nomes, nome)
		}
	}
	return nomes
}

func missingNomes(nomes []string, mapa map[string]models.Lote) []string {
	var missing []string
	for _, nome := range nomes {
		if _, ok := mapa[nome]; !ok {
			missing = append(missing, nome)
		}
	}
	return missing
}

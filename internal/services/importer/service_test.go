package importer

import (
	"os"
	"path/filepath"
	"testing"

	"boleto-management-backend/internal/models"
	"boleto-management-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupImporterDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(&models.Lote{}, &models.Boleto{}, &models.ImportBatch{})
	require.NoError(t, err)

	return db
}

func newImporter(db *gorm.DB) *Service {
	return NewService(
		repository.NewLoteRepository(db),
		repository.NewBoletoRepository(db),
		db,
		zap.NewNop(),
	)
}

func TestResolveLotes(t *testing.T) {
	db := setupImporterDB(t)
	svc := newImporter(db)

	t.Run("creates missing lote once for repeated codes", func(t *testing.T) {
		lotes, err := svc.ResolveLotes([]string{"3", "3"})
		require.NoError(t, err)
		require.Len(t, lotes, 1)

		lote, ok := lotes["0003"]
		require.True(t, ok)
		assert.Equal(t, "0003", lote.Nome)
		assert.True(t, lote.Ativo)
		assert.NotEqual(t, uuid.Nil, lote.ID)

		var count int64
		db.Model(&models.Lote{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		primeiro, err := svc.ResolveLotes([]string{"3"})
		require.NoError(t, err)
		segundo, err := svc.ResolveLotes([]string{"0003"})
		require.NoError(t, err)
		assert.Equal(t, primeiro["0003"].ID, segundo["0003"].ID)
	})

	t.Run("mixes existing and new lotes", func(t *testing.T) {
		lotes, err := svc.ResolveLotes([]string{"3", "4", "4", "5"})
		require.NoError(t, err)
		require.Len(t, lotes, 3)
		for _, nome := range []string{"0003", "0004", "0005"} {
			assert.Contains(t, lotes, nome)
		}
	})
}

func TestImportBoletos(t *testing.T) {
	db := setupImporterDB(t)
	svc := newImporter(db)

	lotes, err := svc.ResolveLotes([]string{"3"})
	require.NoError(t, err)

	rows := []ImportRow{
		{Nome: "A", Unidade: "3", Valor: decimal.NewFromInt(10), LinhaDigitavel: "X"},
		{Nome: "B", Unidade: "3", Valor: decimal.NewFromInt(20), LinhaDigitavel: "Y"},
	}

	inseridos, err := svc.ImportBoletos(rows, lotes)
	require.NoError(t, err)
	require.Len(t, inseridos, 2)

	idLote := lotes["0003"].ID
	for _, b := range inseridos {
		assert.Equal(t, idLote, b.IDLote)
		assert.NotEqual(t, uuid.Nil, b.ID)
		assert.True(t, b.Ativo)
	}

	var count int64
	db.Model(&models.Boleto{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestImportBoletosRollsBackOnFailure(t *testing.T) {
	db := setupImporterDB(t)
	svc := newImporter(db)

	lotes, err := svc.ResolveLotes([]string{"8"})
	require.NoError(t, err)
	// Mapping entry whose lote was never persisted: the second insert
	// violates the foreign key and the whole transaction must roll back.
	lotes["0009"] = *models.NewLote("9")

	rows := []ImportRow{
		{Nome: "A", Unidade: "8", Valor: decimal.NewFromInt(10)},
		{Nome: "B", Unidade: "9", Valor: decimal.NewFromInt(20)},
	}

	_, err = svc.ImportBoletos(rows, lotes)
	require.Error(t, err)

	var count int64
	db.Model(&models.Boleto{}).Count(&count)
	assert.Equal(t, int64(0), count, "no partial record set may be persisted")
}

func TestImportBoletosUnresolvedLote(t *testing.T) {
	db := setupImporterDB(t)
	svc := newImporter(db)

	rows := []ImportRow{{Nome: "A", Unidade: "3", Valor: decimal.NewFromInt(10)}}
	_, err := svc.ImportBoletos(rows, map[string]models.Lote{})
	require.ErrorIs(t, err, ErrLoteNaoResolvido)
}

func TestImportFile(t *testing.T) {
	db := setupImporterDB(t)
	svc := newImporter(db)

	csv := "nome;unidade;valor;linha_digitavel\n" +
		"A;3;10;X\n" +
		"B;3;20;Y\n"
	path := filepath.Join(t.TempDir(), "boletos.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	inseridos, err := svc.ImportFile(path, "boletos.csv")
	require.NoError(t, err)
	require.Len(t, inseridos, 2)

	var lote models.Lote
	require.NoError(t, db.First(&lote, "nome = ?", "0003").Error)
	assert.Equal(t, lote.ID, inseridos[0].IDLote)
	assert.Equal(t, lote.ID, inseridos[1].IDLote)

	// source file removed on success
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// audit record written
	var batch models.ImportBatch
	require.NoError(t, db.First(&batch).Error)
	assert.Equal(t, "completed", batch.Status)
	assert.Equal(t, 2, batch.TotalLinhas)
	assert.Equal(t, 2, batch.BoletosInseridos)
	assert.Equal(t, 1, batch.LotesCriados)
	assert.NotNil(t, batch.ConcluidoEm)
}

func TestImportFileParseFailureKeepsFile(t *testing.T) {
	db := setupImporterDB(t)
	svc := newImporter(db)

	path := filepath.Join(t.TempDir(), "boletos.csv")
	require.NoError(t, os.WriteFile(path, []byte("nome;unidade;valor\nA;3;abc\n"), 0o644))

	_, err := svc.ImportFile(path, "boletos.csv")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	// failure paths leave the upload to the caller
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	var count int64
	db.Model(&models.Boleto{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

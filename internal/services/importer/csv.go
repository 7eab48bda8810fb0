package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ImportRow is one parsed line of the boleto import file.
type ImportRow struct {
	Nome           string
	Unidade        string
	Valor          decimal.Decimal
	LinhaDigitavel string
}

// ParseError reports a row that failed validation. Linha is 1-based and
// counts the header row.
type ParseError struct {
	Linha  int
	Campo  string
	Motivo string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("linha %d: campo %q: %s", e.Linha, e.Campo, e.Motivo)
}

// ParseBoletosCSV reads a ;-separated file with a header row naming the
// columns nome, unidade, valor and linha_digitavel. Every row must carry a
// non-empty unidade and a parseable decimal valor; the first bad row fails
// the whole parse, since the import is all-or-nothing from the start.
func ParseBoletosCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"nome", "unidade", "valor"} {
		if _, ok := columns[required]; !ok {
			return nil, &ParseError{Linha: 1, Campo: required, Motivo: "coluna ausente no cabeçalho"}
		}
	}

	var rows []ImportRow
	linha := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		linha++
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", linha, err)
		}
		if strings.Join(record, "") == "" {
			continue
		}

		unidade := strings.TrimSpace(field(record, columns, "unidade"))
		if unidade == "" {
			return nil, &ParseError{Linha: linha, Campo: "unidade", Motivo: "código do lote vazio"}
		}

		rawValor := strings.TrimSpace(field(record, columns, "valor"))
		valor, err := decimal.NewFromString(rawValor)
		if err != nil {
			return nil, &ParseError{Linha: linha, Campo: "valor", Motivo: fmt.Sprintf("valor %q não é decimal", rawValor)}
		}

		rows = append(rows, ImportRow{
			Nome:           strings.TrimSpace(field(record, columns, "nome")),
			Unidade:        unidade,
			Valor:          valor,
			LinhaDigitavel: strings.TrimSpace(field(record, columns, "linha_digitavel")),
		})
	}

	return rows, nil
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

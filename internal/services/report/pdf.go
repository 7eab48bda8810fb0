package report

import (
	"bytes"
	"fmt"

	"boleto-management-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

var reportHeaders = []string{"ID", "Nome", "ID Lote", "Valor", "Linha Digitável"}

// renderReportPDF lays the boletos out as a fixed five-column table. Column
// offsets are equal fractions of the printable width. When a row would cross
// the bottom margin a new page is started and the header repeated.
func renderReportPDF(boletos []models.Boleto) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 10)

	const margin, lineHeight = 15.0, 8.0
	pageWidth, pageHeight := doc.GetPageSize()
	printable := pageWidth - 2*margin
	colWidth := printable / float64(len(reportHeaders))

	y := margin + lineHeight
	doc.Text(margin, y, tr("Relatório de Boletos"))
	y += lineHeight * 2

	writeRow := func(values []string) {
		if y > pageHeight-margin {
			doc.AddPage()
			y = margin + lineHeight
			x := margin
			for _, h := range reportHeaders {
				doc.Text(x, y, tr(h))
				x += colWidth
			}
			y += lineHeight
		}
		x := margin
		for _, v := range values {
			doc.Text(x, y, tr(v))
			x += colWidth
		}
		y += lineHeight
	}

	x := margin
	for _, h := range reportHeaders {
		doc.Text(x, y, tr(h))
		x += colWidth
	}
	y += lineHeight

	for _, b := range boletos {
		writeRow([]string{
			b.ID.String(),
			b.NomeSacado,
			b.IDLote.String(),
			b.Valor.String(),
			b.LinhaDigitavel,
		})
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

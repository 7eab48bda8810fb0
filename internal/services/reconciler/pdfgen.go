package reconciler

import (
	"bytes"
	"fmt"

	"boleto-management-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// renderBoletoPDF synthesizes the per-boleto output document: three
// label-value lines with the holder name, amount and payment line.
func renderBoletoPDF(b models.Boleto) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	const x, lineHeight = 15.0, 8.0
	y := 20.0
	for _, linha := range []string{
		"Nome Sacado: " + b.NomeSacado,
		"Valor: " + b.Valor.String(),
		"Linha Digitável: " + b.LinhaDigitavel,
	} {
		doc.Text(x, y, tr(linha))
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering boleto pdf: %w", err)
	}
	return buf.Bytes(), nil
}

package reconciler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor turns raw document bytes into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFExtractor extracts text row by row from every page, which keeps one
// name per output line for the documents this pipeline receives.
type PDFExtractor struct{}

func (PDFExtractor) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	return sb.String(), nil
}

// CandidateNames splits extracted text into candidate holder names: one per
// line, trimmed, empty lines dropped, document order preserved.
func CandidateNames(text string) []string {
	var nomes []string
	for _, linha := range strings.Split(text, "\n") {
		linha = strings.TrimSpace(linha)
		if linha != "" {
			nomes = append(nomes, linha)
		}
	}
	return nomes
}

package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoletosCSV(t *testing.T) {
	input := "nome;unidade;valor;linha_digitavel\n" +
		"JOSE DA SILVA;17;182.54;123456123456123456\n" +
		"MARCOS ROBERTO;18;178.20;123456123456123456\n" +
		"\n" +
		"MARCIA CARVALHO;18;128.00;123456123456123456\n"

	rows, err := ParseBoletosCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "JOSE DA SILVA", rows[0].Nome)
	assert.Equal(t, "17", rows[0].Unidade)
	assert.True(t, rows[0].Valor.Equal(decimal.RequireFromString("182.54")))
	assert.Equal(t, "123456123456123456", rows[0].LinhaDigitavel)
	assert.Equal(t, "18", rows[2].Unidade)
}

func TestParseBoletosCSVErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCampo string
		wantLinha int
	}{
		{
			name:      "invalid valor",
			input:     "nome;unidade;valor;linha_digitavel\nJOSE;17;abc;123\n",
			wantCampo: "valor",
			wantLinha: 2,
		},
		{
			name:      "empty unidade",
			input:     "nome;unidade;valor;linha_digitavel\nJOSE;17;10;123\nMARIA; ;20;456\n",
			wantCampo: "unidade",
			wantLinha: 3,
		},
		{
			name:      "missing valor column",
			input:     "nome;unidade;linha_digitavel\nJOSE;17;123\n",
			wantCampo: "valor",
			wantLinha: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoletosCSV(strings.NewReader(tt.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantCampo, parseErr.Campo)
			assert.Equal(t, tt.wantLinha, parseErr.Linha)
		})
	}
}

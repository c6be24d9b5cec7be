package estoque

import (
	"reflect"
	"testing"
)

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "Trim and drop empty lines",
			raw:  []string{"  VES-TOP-AZUL-P2  ", "", "   ", "VES-SAIA-ROSA-M1"},
			want: []string{"VES-TOP-AZUL-P2", "VES-SAIA-ROSA-M1"},
		},
		{
			name: "Split embedded newlines and carriage returns",
			raw:  []string{"VES-TOP-AZUL-P2\r\nVES-SAIA-ROSA-M1"},
			want: []string{"VES-TOP-AZUL-P2", "VES-SAIA-ROSA-M1"},
		},
		{
			name: "Strip trailing pagination suffix",
			raw:  []string{"VES-TOP-AZUL-P2 1/3"},
			want: []string{"VES-TOP-AZUL-P2"},
		},
		{
			name: "Drop report boilerplate",
			raw: []string{
				"Lista de Resumo",
				"(Produtos do Armazém)",
				"Variação",
				"SKU de Produto",
				"Qtd.",
				"https://app.upseller.com/print",
				"2/10",
				"12/08/2025 14:33",
				"Qtd. de Pedidos: 37",
				"Número de SKUs de Produtos: 12",
				"Total de Produtos: 58",
				"VES-TOP-AZUL-P2",
			},
			want: []string{"VES-TOP-AZUL-P2"},
		},
		{
			name: "Join hyphen-wrapped lines",
			raw:  []string{"VESTIDO-MOL-", "GG5", "VES-SAIA-ROSA-M1"},
			want: []string{"VESTIDO-MOL-GG5", "VES-SAIA-ROSA-M1"},
		},
		{
			name: "Join consumes consecutive hyphen-terminated lines",
			raw:  []string{"VES-", "CARECA-", "PRETO-M3"},
			want: []string{"VES-CARECA-PRETO-M3"},
		},
		{
			name: "Trailing hyphen at end of document stays",
			raw:  []string{"VES-CARECA-"},
			want: []string{"VES-CARECA-"},
		},
		{
			name: "Empty input",
			raw:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLines(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeLinesKeepsOrder(t *testing.T) {
	raw := []string{
		"Lista de Resumo (Produtos do Armazém)",
		"VES-TOP-AZUL-P2",
		"Variação",
		"VES-SAIA-ROSA-M1",
		"VES-CALCA-JEANS-102",
	}
	got := NormalizeLines(raw)
	want := []string{"VES-TOP-AZUL-P2", "VES-SAIA-ROSA-M1", "VES-CALCA-JEANS-102"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeLines() = %v, want %v", got, want)
	}
}

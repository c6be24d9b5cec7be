package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSku(t *testing.T) {
	tests := []struct {
		name    string
		skuBase string
		color   string
		size    string
		want    string
	}{
		{
			name:    "Basic variant",
			skuBase: "VES-MOLETOM",
			color:   "cinza",
			size:    "m",
			want:    "VES-MOLETOM-Cinza-M",
		},
		{
			name:    "Color with spaces collapses",
			skuBase: "VES-TOP",
			color:   "azul marinho",
			size:    "GG",
			want:    "VES-TOP-AzulMarinho-GG",
		},
		{
			name:    "Accented color keeps accent",
			skuBase: "ves-calca",
			color:   "pêssego",
			size:    "10",
			want:    "VES-CALCA-Pêssego-10",
		},
		{
			name:    "Punctuation stripped from color and size",
			skuBase: "VES-SAIA",
			color:   "rosa (claro)",
			size:    "p.",
			want:    "VES-SAIA-RosaClaro-P",
		},
		{
			name:    "Base keeps internal hyphens and uppercases",
			skuBase: " ves moletom ",
			color:   "preto",
			size:    "xg",
			want:    "VESMOLETOM-Preto-XG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSku(tt.skuBase, tt.color, tt.size))
		})
	}
}

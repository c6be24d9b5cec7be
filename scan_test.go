package estoque

import (
	"reflect"
	"testing"
)

func TestCompactToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Uppercases and strips spaces", "ves-top azul-p", "VES-TOPAZUL-P"},
		{"Collapses repeated hyphens", "VES--TOP---AZUL-P", "VES-TOP-AZUL-P"},
		{"Keeps accented capitals", "VES-CALÇA-JEANS-M", "VES-CALÇA-JEANS-M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompactToken(tt.in); got != tt.want {
				t.Errorf("CompactToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeSku(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Uppercase and trim", "  ves-top-azul-p ", "VES-TOP-AZUL-P"},
		{"Keeps hyphens and underscores", "ves_top-azul", "VES_TOP-AZUL"},
		{"Drops punctuation", "VES.TOP,AZUL(P)", "VESTOPAZULP"},
		{"Keeps accents", "calça", "CALÇA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSku(tt.in); got != tt.want {
				t.Errorf("SanitizeSku(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{"Hyphen variance collapses", "VES-TOP-AZUL-P", "VESTOP-AZULP", true},
		{"Underscore variance collapses", "VES_TOP_AZUL_P", "VES-TOP-AZUL-P", true},
		{"Different digits stay apart", "VES-TOP-AZUL-P2", "VES-TOP-AZUL-P3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeKey(tt.a) == NormalizeKey(tt.b)
			if got != tt.same {
				t.Errorf("NormalizeKey(%q) == NormalizeKey(%q) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestScanLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []ExtractionFact
	}{
		{
			name: "Letter size with trailing quantity",
			line: "VES-MOLETOM-CINZA-M12",
			want: []ExtractionFact{{SkuPdf: "VES-MOLETOM-CINZA-M", Quantity: 12}},
		},
		{
			name: "Letter size fused single digit",
			line: "VESTIDO-MOL-GG5",
			want: []ExtractionFact{{SkuPdf: "VESTIDO-MOL-GG", Quantity: 5}},
		},
		{
			name: "Numeric size with fused quantity",
			line: "VES-CALCA-JEANS-125",
			want: []ExtractionFact{{SkuPdf: "VES-CALCA-JEANS-12", Quantity: 5}},
		},
		{
			name: "Recognized numeric size alone yields no quantity",
			line: "VES-CALCA-JEANS-12",
			want: nil,
		},
		{
			name: "Spaces inside token are extraction noise",
			line: "VES-MOLETOM - CINZA-M 3",
			want: []ExtractionFact{{SkuPdf: "VES-MOLETOM-CINZA-M", Quantity: 3}},
		},
		{
			name: "Two tokens on one line",
			line: "VES-TOP-AZUL-P2 VES-SAIA-ROSA-M1",
			want: []ExtractionFact{
				{SkuPdf: "VES-TOP-AZUL-P", Quantity: 2},
				{SkuPdf: "VES-SAIA-ROSA-M", Quantity: 1},
			},
		},
		{
			name: "Date fragment after quantity keeps first digit",
			line: "VES-CALCA-JEANS-M 12/08/2025",
			want: []ExtractionFact{{SkuPdf: "VES-CALCA-JEANS-M", Quantity: 1}},
		},
		{
			name: "Stray size before token at line start is dropped",
			line: "GGVES-CARECA-PRETO-M3",
			want: []ExtractionFact{{SkuPdf: "VES-CARECA-PRETO-M", Quantity: 3}},
		},
		{
			name: "Stray size after comma is dropped",
			line: "X,GGVES-CARECA-PRETO-M3",
			want: []ExtractionFact{{SkuPdf: "VES-CARECA-PRETO-M", Quantity: 3}},
		},
		{
			// the strip has no way to tell a stray size from a token
			// whose first letters spell one; the clipped token is
			// recovered through the mapping table
			name: "Token starting with a size letter gets clipped",
			line: "MOL-CARECA-AZUL-M12",
			want: []ExtractionFact{{SkuPdf: "OL-CARECA-AZUL-M", Quantity: 12}},
		},
		{
			name: "Zero is not a quantity",
			line: "VES-TOP-AZUL-P0",
			want: nil,
		},
		{
			name: "Accented free segment",
			line: "VES-CALÇA-PRETA-G2",
			want: []ExtractionFact{{SkuPdf: "VES-CALÇA-PRETA-G", Quantity: 2}},
		},
		{
			name: "No token on line",
			line: "algum texto qualquer",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScanner().ScanLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestScanLinePendingCarryOver(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []ExtractionFact
	}{
		{
			name:  "Bare token resolved by next-line digit",
			lines: []string{"VES-CARECA-PRETO-P", "3"},
			want:  []ExtractionFact{{SkuPdf: "VES-CARECA-PRETO-P", Quantity: 3}},
		},
		{
			name:  "Bare token resolved by size-prefixed digit",
			lines: []string{"VES-CARECA-PRETO-PP", "M3"},
			want:  []ExtractionFact{{SkuPdf: "VES-CARECA-PRETO-PP", Quantity: 3}},
		},
		{
			name:  "Later bare token overwrites pending",
			lines: []string{"VES-CARECA-PRETO-P", "VES-CARECA-AZUL-M", "2"},
			want:  []ExtractionFact{{SkuPdf: "VES-CARECA-AZUL-M", Quantity: 2}},
		},
		{
			name:  "Unresolvable line drops nothing but keeps pending",
			lines: []string{"VES-CARECA-PRETO-P", "texto", "4"},
			want:  []ExtractionFact{{SkuPdf: "VES-CARECA-PRETO-P", Quantity: 4}},
		},
		{
			name:  "Pending never resolved yields nothing",
			lines: []string{"VES-CARECA-PRETO-P"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanLines(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanLines(%v) = %v, want %v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestScanLinesDeduplicates(t *testing.T) {
	lines := []string{
		"VES-TOP-AZUL-P2",
		"VES-TOP-AZUL-P2",
		"VES--TOP--AZUL--P2",
		"VES-TOP-AZUL-P3",
	}
	got := ScanLines(lines)
	want := []ExtractionFact{
		{SkuPdf: "VES-TOP-AZUL-P", Quantity: 2},
		{SkuPdf: "VES-TOP-AZUL-P", Quantity: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanLines() = %v, want %v", got, want)
	}
}

func TestScannerPending(t *testing.T) {
	s := NewScanner()
	s.ScanLine("VES-CARECA-PRETO-P")
	if s.Pending() != "VES-CARECA-PRETO-P" {
		t.Errorf("Pending() = %q, want %q", s.Pending(), "VES-CARECA-PRETO-P")
	}
	s.ScanLine("3")
	if s.Pending() != "" {
		t.Errorf("Pending() after resolution = %q, want empty", s.Pending())
	}
}

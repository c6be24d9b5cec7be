package estoque

import "testing"

func TestSplitSizeAndQuantity(t *testing.T) {
	tests := []struct {
		name     string
		sizePart string
		wantSize string
		wantQty  string
	}{
		{
			name:     "Recognized single digit size passes through",
			sizePart: "8",
			wantSize: "8",
			wantQty:  "",
		},
		{
			name:     "Recognized two digit size passes through",
			sizePart: "12",
			wantSize: "12",
			wantQty:  "",
		},
		{
			name:     "Letter size passes through",
			sizePart: "GG",
			wantSize: "GG",
			wantQty:  "",
		},
		{
			name:     "Two digits split into size and quantity",
			sizePart: "43",
			wantSize: "4",
			wantQty:  "3",
		},
		{
			name:     "Three digits split at two digit size",
			sizePart: "125",
			wantSize: "12",
			wantQty:  "5",
		},
		{
			name:     "Three digits split at single digit size",
			sizePart: "427",
			wantSize: "4",
			wantQty:  "27",
		},
		{
			name:     "Unsplittable run keeps first digit as size",
			sizePart: "999",
			wantSize: "9",
			wantQty:  "99",
		},
		{
			name:     "Single digit never splits",
			sizePart: "7",
			wantSize: "7",
			wantQty:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, qty := splitSizeAndQuantity(tt.sizePart)
			if size != tt.wantSize || qty != tt.wantQty {
				t.Errorf("splitSizeAndQuantity(%q) = (%q, %q), want (%q, %q)",
					tt.sizePart, size, qty, tt.wantSize, tt.wantQty)
			}
		})
	}
}

package estoque

import "regexp"

// sizePattern is the size vocabulary at the tail of a SKU token: the
// letter codes or a 1-3 digit numeric size. Alternation order matters:
// longer letter codes must come before their prefixes.
const sizePattern = `XGG|GG|XG|PP|G|M|P|\d{1,3}`

// recognizedSizes are the size values that occur in the catalog. A 2-3
// digit size-position value outside this table is assumed to carry a
// fused quantity.
var recognizedSizes = map[string]bool{
	"4": true, "6": true, "8": true, "10": true, "12": true, "14": true, "16": true,
	"P": true, "M": true, "G": true, "GG": true, "PP": true, "XG": true, "XGG": true,
}

var fusedDigitsRe = regexp.MustCompile(`^\d{2,3}$`)

// splitSizeAndQuantity resolves an ambiguous digit run in a token's size
// position. When the run is 2-3 digits and not a recognized size, the
// rightmost digits are peeled off one at a time until the remainder is a
// recognized size (the longest valid prefix wins); the peeled digits are
// the fused quantity. A 3-digit run therefore splits into a 2-digit size
// plus the remaining digit whenever that 2-digit prefix is a valid size.
// Recognized sizes and letter codes pass through with no quantity.
func splitSizeAndQuantity(sizePart string) (size, quantity string) {
	if !fusedDigitsRe.MatchString(sizePart) || recognizedSizes[sizePart] {
		return sizePart, ""
	}
	take := ""
	s := sizePart
	for len(s) > 1 && !recognizedSizes[s] {
		take = s[len(s)-1:] + take
		s = s[:len(s)-1]
	}
	return s, take
}

package estoque

import (
	"regexp"
	"strconv"
	"strings"
)

// SKU grammar: 1-3 letter segments joined by hyphens, one or two free-form
// alphanumeric segments (Portuguese accented capitals included), then a
// size token, optionally followed by 1-3 fused quantity digits.
const (
	letterSegments = `[A-Z]{2,}(?:-[A-Z]{2,}){0,2}`
	freeSegment    = `[A-Z0-9ÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ]+`
	tokenPattern   = `(?:` + letterSegments + `)` +
		`-(?:` + freeSegment + `)` +
		`(?:-` + freeSegment + `)?` +
		`-(?:` + sizePattern + `)`
)

var (
	skuRe = regexp.MustCompile(`(` + tokenPattern + `)(\d{1,3})?`)

	// A stray size value sometimes leaks in front of the real SKU (an
	// extraction artifact), at line start or right after a comma. The
	// source heuristic used a lookahead; RE2 has none, so the SKU prefix
	// is consumed and restored through the capture group instead.
	prefaceSizeStartRe = regexp.MustCompile(`^(?:` + sizePattern + `)(` + letterSegments + `-)`)
	prefaceSizeCommaRe = regexp.MustCompile(`,(?:` + sizePattern + `)(` + letterSegments + `-)`)

	sizeSuffixRe = regexp.MustCompile(`^(.*-)(` + sizePattern + `)$`)

	digitRunRe     = regexp.MustCompile(`^\d{1,3}$`)
	tailSizeQtyRe  = regexp.MustCompile(`^(?:` + sizePattern + `)?(\d{1,3})$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	multiHyphenRe  = regexp.MustCompile(`-{2,}`)
	nonAlphaNumRe  = regexp.MustCompile(`[^A-Z0-9]`)
	skuCharFilter  = regexp.MustCompile(`[^A-Z0-9\-_ÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ]`)
)

// CompactToken upper-cases a string, strips all whitespace and collapses
// repeated hyphens. SKU tokens are stored in this form.
func CompactToken(s string) string {
	s = strings.ToUpper(s)
	s = whitespaceRe.ReplaceAllString(s, "")
	return multiHyphenRe.ReplaceAllString(s, "-")
}

// SanitizeSku reduces a SKU to its canonical comparison form: upper-cased,
// space-stripped and restricted to the SKU character set.
func SanitizeSku(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return skuCharFilter.ReplaceAllString(s, "")
}

// NormalizeKey reduces a SKU to letters and digits only, for equality
// comparison across formatting variance.
func NormalizeKey(s string) string {
	return nonAlphaNumRe.ReplaceAllString(SanitizeSku(s), "")
}

// factKey identifies an emitted fact for per-document deduplication.
type factKey struct {
	sku string
	qty int
}

// Scanner extracts sale facts from normalized report lines. It carries two
// pieces of state, both scoped to a single document: the dedup set of
// already-emitted facts, and at most one pending bare SKU token whose
// quantity is expected on a following line. Create a fresh Scanner per
// document.
type Scanner struct {
	seen    map[factKey]struct{}
	pending string
}

// NewScanner creates a Scanner with empty state.
func NewScanner() *Scanner {
	return &Scanner{seen: make(map[factKey]struct{})}
}

// Pending returns the bare SKU token currently carried across lines, or
// the empty string when none is pending.
func (s *Scanner) Pending() string {
	return s.pending
}

// ScanLine scans one normalized line and returns the facts it yields, in
// document order. Facts already emitted earlier in the document are
// suppressed.
func (s *Scanner) ScanLine(line string) []ExtractionFact {
	compact := CompactToken(line)
	compact = prefaceSizeStartRe.ReplaceAllString(compact, "$1")
	compact = prefaceSizeCommaRe.ReplaceAllString(compact, ",$1")

	var facts []ExtractionFact
	lastEnd := 0

	for _, m := range skuRe.FindAllStringSubmatchIndex(compact, -1) {
		token := compact[m[2]:m[3]]
		tokenOut := token

		qtyStr := ""
		qtyEnd := -1
		if m[4] >= 0 {
			qtyStr = compact[m[4]:m[5]]
			qtyEnd = m[5]
		}

		if qtyStr == "" {
			if sm := sizeSuffixRe.FindStringSubmatch(token); sm != nil {
				if size, qty := splitSizeAndQuantity(sm[2]); qty != "" {
					qtyStr = qty
					tokenOut = sm[1] + size
				}
			}
		}

		qty, ok := parseQuantity(qtyStr, charAfter(compact, qtyEnd, m[3]))
		if ok {
			if fact, emitted := s.emit(tokenOut, qty); emitted {
				facts = append(facts, fact)
			}
			s.pending = ""
		} else {
			// bare token: remember it, overwriting any earlier one
			s.pending = tokenOut
		}
		lastEnd = m[1]
	}

	if s.pending != "" {
		if qty, ok := resolveTail(compact[lastEnd:]); ok {
			if fact, emitted := s.emit(s.pending, qty); emitted {
				facts = append(facts, fact)
			}
			s.pending = ""
		}
	}

	return facts
}

// emit records a fact in the dedup set and returns it, or reports false
// when an identical (normalized SKU, quantity) pair was already emitted
// for this document.
func (s *Scanner) emit(token string, qty int) (ExtractionFact, bool) {
	sku := CompactToken(token)
	key := factKey{sku: NormalizeKey(sku), qty: qty}
	if _, dup := s.seen[key]; dup {
		return ExtractionFact{}, false
	}
	s.seen[key] = struct{}{}
	return ExtractionFact{SkuPdf: sku, Quantity: qty}, true
}

// charAfter returns the byte following the quantity group when it matched,
// otherwise the byte following the token; 0 at end of line.
func charAfter(compact string, qtyEnd, tokenEnd int) byte {
	pos := tokenEnd
	if qtyEnd >= 0 {
		pos = qtyEnd
	}
	if pos < len(compact) {
		return compact[pos]
	}
	return 0
}

// parseQuantity interprets a 1-3 digit run as a quantity. A run
// immediately followed by '/' starts a date fragment (DD/MM/YYYY); only
// its first digit is kept, and only when unambiguous. Zero never counts
// as a quantity.
func parseQuantity(s string, next byte) (int, bool) {
	if !digitRunRe.MatchString(s) {
		return 0, false
	}
	if next == '/' {
		s = s[:1]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// resolveTail decides whether the remainder of a line past the last
// grammar match resolves a pending token: it must be purely 1-3 digits,
// optionally preceded by a size word.
func resolveTail(tail string) (int, bool) {
	if digitRunRe.MatchString(tail) {
		return parseQuantity(tail, 0)
	}
	if m := tailSizeQtyRe.FindStringSubmatch(tail); m != nil {
		return parseQuantity(m[1], 0)
	}
	return 0, false
}

// ScanLines runs a fresh Scanner over a whole normalized document and
// returns all facts in document order.
func ScanLines(lines []string) []ExtractionFact {
	s := NewScanner()
	var facts []ExtractionFact
	for _, ln := range lines {
		facts = append(facts, s.ScanLine(ln)...)
	}
	return facts
}

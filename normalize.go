package estoque

import (
	"regexp"
	"strings"
)

// pageSuffixRe matches trailing "page N/M" pagination artifacts left over
// by the upstream text extraction.
var pageSuffixRe = regexp.MustCompile(`\s+\d+/\d+\s*$`)

// boilerplateRe matches whole lines of known report furniture: headers,
// column titles, URLs, bare page markers, date stamps and summary totals.
// The set mirrors the UpSeller report layout.
var boilerplateRe = regexp.MustCompile(`(?i)` + strings.Join([]string{
	`^LISTA DE RESUMO`,
	`^\(PRODUTOS DO ARMAZ[EÉ]M\)`,
	`^PRODUTOS DO ARMAZ[EÉ]M`,
	`^VARIA[CÇ][AÃ]O$`,
	`^SKU DE PRODUTO$`,
	`^QTD\.?$`,
	`^IMPRIMIR.*UPSELLER`,
	`^HTTPS?://`,
	`^\d+/\d+$`,
	`^\d{1,2}/\d{1,2}/\d{4}`,
	`^QTD\. DE PEDIDOS`,
	`^N[ÚU]MERO DE SKUS DE PRODUTOS`,
	`^TOTAL DE PRODUTOS`,
}, "|"))

// NormalizeLines turns raw extracted text lines into the clean, ordered
// line sequence the scanner consumes. The transforms are order-sensitive:
// trim and drop empties, strip pagination suffixes, drop boilerplate
// lines, then join hyphen-wrapped lines. Document order is preserved.
func NormalizeLines(raw []string) []string {
	var lines []string
	for _, ln := range raw {
		// upstream extractors sometimes leave carriage returns or whole
		// blocks in a single element
		for _, part := range strings.Split(strings.ReplaceAll(ln, "\r", "\n"), "\n") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			part = pageSuffixRe.ReplaceAllString(part, "")
			if part == "" {
				continue
			}
			lines = append(lines, part)
		}
	}

	kept := lines[:0]
	for _, ln := range lines {
		if boilerplateRe.MatchString(ln) {
			continue
		}
		kept = append(kept, ln)
	}

	return joinHyphenWrapped(kept)
}

// joinHyphenWrapped undoes line-wrap hyphenation inside SKU tokens: a line
// ending with "-" is concatenated with the following line(s) until the
// result no longer ends with a hyphen. Joining consumes the following
// lines entirely.
func joinHyphenWrapped(lines []string) []string {
	var merged []string
	i := 0
	for i < len(lines) {
		cur := lines[i]
		i++
		for strings.HasSuffix(cur, "-") && i < len(lines) {
			cur += lines[i]
			i++
		}
		merged = append(merged, cur)
	}
	return merged
}

package estoque

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// ExtractPDFLines reads a PDF and returns the text of every page as raw
// lines, in document order. Each literal or hex string in the content
// streams becomes one line, which matches how report rows come out of
// the upstream export tools.
func ExtractPDFLines(reader io.ReadSeeker) ([]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF data: %w", err)
	}

	rs := bytes.NewReader(data)
	conf := model.NewDefaultConfiguration()

	// Read, validate and optimize the PDF safely using pdfcpu
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read and validate PDF: %w", err)
	}

	var lines []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		contentReader, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		if contentReader == nil {
			continue
		}

		contentBytes, err := io.ReadAll(contentReader)
		if err != nil {
			continue
		}

		lines = append(lines, extractLinesFromPDFContent(string(contentBytes))...)
	}

	return lines, nil
}

// extractLinesFromPDFContent parses PDF content stream operators and
// returns each shown string as a line
func extractLinesFromPDFContent(content string) []string {
	var lines []string

	// Text showing operators include: Tj, TJ, ', "
	// We look for text in parentheses (literal strings) or angle brackets (hex strings)
	for _, s := range extractPDFStrings(content) {
		if text := decodePDFString(s); text != "" {
			lines = append(lines, text)
		}
	}

	hexRe := regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
	for _, match := range hexRe.FindAllStringSubmatch(content, -1) {
		if len(match) > 1 {
			if text := decodeHexString(match[1]); text != "" {
				lines = append(lines, text)
			}
		}
	}

	return lines
}

// extractPDFStrings extracts strings enclosed in parentheses, handling escaped parens
func extractPDFStrings(content string) []string {
	var results []string
	i := 0
	for i < len(content) {
		if content[i] == '(' {
			str, endIdx := extractPDFString(content, i)
			if endIdx > i {
				results = append(results, str)
				i = endIdx
			} else {
				i++
			}
		} else {
			i++
		}
	}
	return results
}

// extractPDFString extracts a single parenthesized string starting at position start.
// Returns the string content (without outer parens) and the index after the closing paren.
func extractPDFString(content string, start int) (string, int) {
	if start >= len(content) || content[start] != '(' {
		return "", start
	}

	var result strings.Builder
	depth := 0
	i := start

	for i < len(content) {
		ch := content[i]
		if ch == '\\' && i+1 < len(content) {
			// Escaped character - keep backslash and next char for the decoder
			result.WriteByte(ch)
			result.WriteByte(content[i+1])
			i += 2
			continue
		}
		if ch == '(' {
			depth++
			if depth > 1 {
				result.WriteByte(ch)
			}
		} else if ch == ')' {
			depth--
			if depth == 0 {
				return result.String(), i + 1
			}
			result.WriteByte(ch)
		} else if depth > 0 {
			result.WriteByte(ch)
		}
		i++
	}
	return result.String(), i
}

// decodePDFString decodes escape sequences in PDF literal strings
func decodePDFString(s string) string {
	var result strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				result.WriteRune('\n')
			case 'r':
				result.WriteRune('\r')
			case 't':
				result.WriteRune('\t')
			case 'b':
				result.WriteRune('\b')
			case 'f':
				result.WriteRune('\f')
			case '(':
				result.WriteRune('(')
			case ')':
				result.WriteRune(')')
			case '\\':
				result.WriteRune('\\')
			default:
				// Octal escape sequence
				if s[i+1] >= '0' && s[i+1] <= '7' {
					octal := string(s[i+1])
					j := i + 2
					for k := 0; k < 2 && j < len(s) && s[j] >= '0' && s[j] <= '7'; k++ {
						octal += string(s[j])
						j++
					}
					if val, err := strconv.ParseInt(octal, 8, 32); err == nil {
						result.WriteRune(rune(val))
					}
					// land exactly on the first byte after the escape
					// once the shared advance below runs
					i = j - 2
				} else {
					result.WriteByte(s[i+1])
				}
			}
			i += 2
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	// Reports out of the vendor tooling use Windows-1252 for accented
	// Portuguese text; convert when the bytes are not valid UTF-8
	decoded := result.String()
	if containsReplacementChars(decoded) || containsHighBytes(decoded) {
		if converted, err := convertWindows1252ToUTF8(decoded); err == nil {
			return converted
		}
	}
	return decoded
}

// containsReplacementChars checks if string contains Unicode replacement characters
func containsReplacementChars(s string) bool {
	return strings.ContainsRune(s, '�')
}

// containsHighBytes checks if string contains bytes > 127 (potential non-UTF8)
func containsHighBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return true
		}
	}
	return false
}

// convertWindows1252ToUTF8 converts a Windows-1252 encoded string to UTF-8
func convertWindows1252ToUTF8(s string) (string, error) {
	decoder := charmap.Windows1252.NewDecoder()
	result, err := decoder.String(s)
	if err != nil {
		return s, err
	}
	return result, nil
}

// decodeHexString decodes hex-encoded strings, including UTF-16BE and
// single-byte Windows-1252 content
func decodeHexString(hex string) string {
	// Pad with 0 if odd length
	if len(hex)%2 != 0 {
		hex += "0"
	}

	byteData := make([]byte, len(hex)/2)
	for i := 0; i+1 < len(hex); i += 2 {
		val, err := strconv.ParseInt(hex[i:i+2], 16, 32)
		if err != nil {
			continue
		}
		byteData[i/2] = byte(val)
	}

	// UTF-16BE with BOM (FEFF)
	if len(byteData) >= 2 && byteData[0] == 0xFE && byteData[1] == 0xFF {
		return decodeUTF16BE(byteData[2:])
	}

	// Detect UTF-16BE without BOM (alternating null bytes for ASCII range)
	if len(byteData) >= 4 && isLikelyUTF16BE(byteData) {
		return decodeUTF16BE(byteData)
	}

	var result strings.Builder
	for _, b := range byteData {
		if b >= 32 {
			result.WriteByte(b)
		}
	}

	decoded := result.String()
	if containsHighBytes(decoded) {
		if converted, err := convertWindows1252ToUTF8(decoded); err == nil {
			return converted
		}
	}
	return decoded
}

// isLikelyUTF16BE checks if bytes look like UTF-16BE encoded text
func isLikelyUTF16BE(data []byte) bool {
	if len(data) < 4 || len(data)%2 != 0 {
		return false
	}
	// High bytes are mostly zero when the text is ASCII-range UTF-16BE
	zeroCount := 0
	for i := 0; i < len(data); i += 2 {
		if data[i] == 0 {
			zeroCount++
		}
	}
	return zeroCount > len(data)/4
}

// decodeUTF16BE decodes UTF-16BE encoded bytes to a UTF-8 string
func decodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = append(data, 0)
	}

	u16 := make([]uint16, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		u16[i/2] = uint16(data[i])<<8 | uint16(data[i+1])
	}

	runes := utf16.Decode(u16)

	var result strings.Builder
	for _, r := range runes {
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

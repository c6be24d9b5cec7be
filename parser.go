package estoque

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Parser runs the extraction pipeline over one vendor sales report:
// line normalization followed by token scanning with carry-over and
// deduplication. Each Parse* call works on fresh per-document state, so
// a Parser can be reused across documents.
type Parser struct {
	// Options for parsing
	debug bool
}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{
		debug: false,
	}
}

// SetDebug enables or disables debug mode
func (p *Parser) SetDebug(debug bool) {
	p.debug = debug
}

// ParseLines extracts sale facts from already-extracted report lines.
// The result preserves first-occurrence order and is deduplicated; an
// empty result is not an error.
func (p *Parser) ParseLines(lines []string) []ExtractionFact {
	return ScanLines(NormalizeLines(lines))
}

// ParseFile parses a sales-report PDF file and returns the extracted facts
func (p *Parser) ParseFile(filepath string) ([]ExtractionFact, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Printf("Warning: Could not close file: %v", err)
		}
	}(file)

	return p.Parse(file)
}

// Parse parses a sales-report PDF from an io.ReadSeeker and returns the
// extracted facts. Text is pulled straight from the content streams;
// layout is not reconstructed, the line heuristics downstream handle
// the resulting noise.
func (p *Parser) Parse(reader io.ReadSeeker) ([]ExtractionFact, error) {
	lines, err := ExtractPDFLines(reader)
	if err != nil {
		return nil, err
	}

	if p.debug {
		fmt.Println("Extracted Text:")
		for _, line := range lines {
			fmt.Println(line)
		}
	}

	return p.ParseLines(lines), nil
}

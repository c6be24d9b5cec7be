package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jiorblanc/estoque"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run example/main.go <path-to-pdf>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]

	// Create a new parser
	parser := estoque.NewParser()
	parser.SetDebug(false) // Set to true to see extracted text

	// Parse the sales report PDF
	facts, err := parser.ParseFile(pdfPath)
	if err != nil {
		log.Fatalf("Failed to parse PDF: %v", err)
	}

	// Print the results as JSON
	jsonData, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	fmt.Println(string(jsonData))

	fmt.Println("\n=== Extracted Items ===")
	for _, fact := range facts {
		fmt.Printf("%-45s x %d\n", fact.SkuPdf, fact.Quantity)
	}
	fmt.Printf("\nTotal: %d distinct items\n", len(facts))
}

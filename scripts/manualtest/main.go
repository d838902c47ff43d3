package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaywantadh/GradeByte/internal/classifier"
	"github.com/jaywantadh/GradeByte/internal/extractor"
)

// Dumps the reconstructed lines of a sample PDF and how many answers each
// classifier variant recovers from them, for eyeballing extraction quality.
func main() {
	inputPath := filepath.Join("samples", "answer_key.pdf")
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}

	doc, err := (&extractor.PDFSource{}).Extract(inputPath)
	if err != nil {
		fmt.Printf("❌ Extraction failed: %v\n", err)
		return
	}
	fmt.Printf("📄 %s: %d pages\n", inputPath, len(doc.Pages))

	for _, p := range doc.Pages {
		lines := p.Lines()
		fmt.Printf("--- page %d (%d lines)\n", p.Number, len(lines))
		for _, l := range lines {
			fmt.Println(l)
		}
	}

	lines := doc.Lines()
	for _, v := range []classifier.Variant{classifier.VariantKey, classifier.VariantDual, classifier.VariantSimple} {
		answers, err := classifier.Parse(v, lines)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", v, err)
			continue
		}
		fmt.Printf("🧩 %-6s %d answers\n", v, len(answers))
	}
}

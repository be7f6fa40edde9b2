// Package pdf extracts plain text from PDF files page by page.
package pdf

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// Page holds the extracted text of a single PDF page.
// Number is the 1-based page number in the source file.
type Page struct {
	Number int
	Text   string
}

// Load reads the PDF at path and returns one Page per readable page.
// A missing file satisfies errors.Is(err, fs.ErrNotExist).
func Load(path string) ([]Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]Page, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// Pages with broken font tables are skipped, not fatal.
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}

package document

import (
	"fmt"
	"os"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFLoader returns one entry per PDF page.
type PDFLoader struct{}

func (l *PDFLoader) Load(data []byte, filename string) ([]string, error) {
	// ledongthuc/pdf opens by path, so spill the upload to a temp file.
	tmp, err := os.CreateTemp("", "insightgpt-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

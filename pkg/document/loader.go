// Package document turns uploaded files into page texts for indexing.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// Loader extracts the text of each page (or page-like section) of a document.
type Loader interface {
	Load(data []byte, filename string) ([]string, error)
}

// SupportedExtensions lists the upload formats the index can be built from.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".txt":      true,
}

// ForFile returns the loader for filename's extension.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".txt":
		return &TextLoader{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadPages picks a loader by extension and returns the non-empty page texts.
func LoadPages(filename string, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, errors.New("document is empty")
	}

	loader, err := ForFile(filename)
	if err != nil {
		return nil, err
	}

	pages, err := loader.Load(data, filename)
	if err != nil {
		return nil, err
	}

	out := pages[:0]
	for _, p := range pages {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", filename)
	}
	return out, nil
}

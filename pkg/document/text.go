package document

import "strings"

// TextLoader treats form feeds as page breaks.
type TextLoader struct{}

func (l *TextLoader) Load(data []byte, filename string) ([]string, error) {
	return strings.Split(string(data), "\f"), nil
}

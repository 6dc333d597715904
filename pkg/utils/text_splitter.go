package utils

import "strings"

// SplitText splits text into chunks of at most chunkSize characters where
// consecutive chunks share overlap characters. Lengths are counted in runes.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if chunkSize <= 0 || totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // overlap >= chunkSize would never advance
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// SplitPages chunks every page independently and drops blank pages,
// so no chunk ever spans a page boundary.
func SplitPages(pages []string, chunkSize int, overlap int) []string {
	var chunks []string
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		chunks = append(chunks, SplitText(page, chunkSize, overlap)...)
	}
	return chunks
}

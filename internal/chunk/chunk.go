// Package chunk splits documents into bounded, overlapping substrings used
// as the unit of semantic comparison.
package chunk

import "unicode/utf8"

// maxChunks is a safety cap on the output slice length.
const maxChunks = 10_000

// Split cuts text into chunks of at most size runes with the given rune
// overlap between adjacent chunks. Overlap is clamped to size-1. Returns
// nil for empty text or non-positive size.
func Split(text string, size, overlap int) []string {
	if text == "" || size <= 0 || !utf8.ValidString(text) {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	chunks := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) || len(chunks) == maxChunks {
			break
		}
	}
	return chunks
}

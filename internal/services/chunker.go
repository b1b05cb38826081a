package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs paragraphs into chunks of at most maxChunkSize runes.
// Paragraphs longer than that are split on sentence boundaries, and sentences
// longer than that are cut by rune count. Each new chunk starts with up to
// overlap runes from the end of the previous one, as far as the limit allows.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	acc := &chunkAccumulator{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			acc.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			acc.add(sentence, " ")
		}
	}

	return acc.finish()
}

type chunkAccumulator struct {
	max     int
	overlap int
	current strings.Builder
	size    int
	chunks  []string
}

func (a *chunkAccumulator) add(piece, sep string) {
	pieceLen := utf8.RuneCountInString(piece)
	if pieceLen > a.max {
		for _, part := range splitRunes(piece, a.max) {
			a.add(part, sep)
		}
		return
	}

	sepLen := utf8.RuneCountInString(sep)
	if a.size > 0 && a.size+sepLen+pieceLen > a.max {
		a.flush(a.max - sepLen - pieceLen)
	}
	if a.size > 0 {
		a.write(sep)
	}
	a.write(piece)
}

// flush closes the current chunk and seeds the next one with at most room
// runes of overlap.
func (a *chunkAccumulator) flush(room int) {
	prev := a.current.String()
	a.chunks = append(a.chunks, prev)
	a.current.Reset()
	a.size = 0

	if tail := getLastNChars(prev, min(a.overlap, room)); tail != "" {
		a.write(tail)
	}
}

func (a *chunkAccumulator) write(s string) {
	a.current.WriteString(s)
	a.size += utf8.RuneCountInString(s)
}

func (a *chunkAccumulator) finish() []string {
	if a.current.Len() > 0 {
		a.chunks = append(a.chunks, a.current.String())
	}
	return a.chunks
}

// splitIntoSentences keeps the terminating punctuation on each sentence.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}

func splitRunes(s string, n int) []string {
	runes := []rune(s)
	parts := make([]string, 0, len(runes)/n+1)
	for len(runes) > n {
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return append(parts, string(runes))
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}

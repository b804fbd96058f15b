package speech

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Split partitions commentary into sentences. A sentence ends at '.', '!' or '?'
// immediately followed by whitespace; the punctuation stays with the sentence and the
// whitespace run is dropped. Abbreviations, decimals and quotes get no special
// treatment. Empty pieces are discarded.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		if !isTerminal(r) || i >= len(text) {
			continue
		}

		next, _ := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(next) {
			continue
		}

		sentences = appendNonEmpty(sentences, text[start:i])

		// Skip the whole whitespace run
		for i < len(text) {
			ws, wsSize := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(ws) {
				break
			}
			i += wsSize
		}
		start = i
	}

	return appendNonEmpty(sentences, text[start:])
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func appendNonEmpty(sentences []string, s string) []string {
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}

// Segment is one sentence of a highlighted commentary rendering
type Segment struct {
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

// Highlight marks the sentence at index as active. An index outside the
// sentences leaves every segment inactive.
func Highlight(sentences []string, index int) []Segment {
	segments := make([]Segment, len(sentences))
	for i, s := range sentences {
		segments[i] = Segment{Text: s, Active: i == index}
	}
	return segments
}

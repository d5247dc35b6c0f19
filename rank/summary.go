package rank

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Summarize condenses body text to at most maxLength characters by keeping
// whole leading sentences. When even the first sentence overflows the
// budget, the text is cut at the last word boundary inside it instead.
// The budget counts runes, not bytes, so multibyte text is not shortchanged.
// This is pure text selection; nothing is generated or reworded.
func Summarize(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	var sb strings.Builder
	used := 0
	for _, sentence := range splitSentences(text) {
		candidate := utf8.RuneCountInString(sentence)
		if used > 0 {
			candidate += used + 1
		}
		if candidate > maxLength {
			break
		}
		if used > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(sentence)
		used = candidate
	}

	if sb.Len() > 0 {
		return sb.String()
	}
	return cutAtWord(text, maxLength)
}

// splitSentences breaks text on terminal punctuation followed by space.
// Common abbreviation traps (single capital initials, "e.g.") are not
// handled specially; a wrong split costs a slightly shorter summary, never
// a broken word.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Consume trailing closers like quotes or parens.
		end := i + 1
		for end < len(runes) && (runes[end] == ')' || runes[end] == '"' || runes[end] == '\'') {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start:end]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
		i = end - 1
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// cutAtWord truncates text at the last space before maxLength so no word
// is ever split mid-way.
func cutAtWord(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	cut := maxLength
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		// A single word longer than the budget; keep it whole.
		cut = maxLength
		for cut < len(runes) && !unicode.IsSpace(runes[cut]) {
			cut++
		}
	}
	return strings.TrimSpace(string(runes[:cut]))
}

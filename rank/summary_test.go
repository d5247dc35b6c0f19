package rank

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeShortTextUnchanged(t *testing.T) {
	text := "Fits in the budget."
	assert.Equal(t, text, Summarize(text, 100))
}

func TestSummarizeKeepsWholeSentences(t *testing.T) {
	text := "One short sentence. Another short one. A third sentence that tips past the limit."
	got := Summarize(text, 40)
	assert.Equal(t, "One short sentence. Another short one.", got)
}

func TestSummarizeNeverSplitsWords(t *testing.T) {
	text := "A single very long sentence without any terminal punctuation that keeps going and going past every reasonable budget"
	got := Summarize(text, 50)

	assert.LessOrEqual(t, len(got), 50)
	assert.NotEqual(t, byte(' '), got[len(got)-1])
	// The cut point must land between words, so what remains is a prefix
	// of the original word sequence.
	assert.True(t, strings.HasPrefix(text, got))
	assert.Equal(t, ' ', rune(text[len(got)]), "cut must fall on a word boundary")
}

func TestSummarizeBudgetsInRunes(t *testing.T) {
	// Multibyte characters count once each; a byte budget would drop the
	// second sentence here.
	text := "Éé éé. Ok fine. Third sentence over."
	got := Summarize(text, 15)

	assert.Equal(t, "Éé éé. Ok fine.", got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 15)
}

func TestSummarizeSingleOversizedWord(t *testing.T) {
	word := strings.Repeat("x", 80)
	got := Summarize(word, 20)
	assert.Equal(t, word, got, "a single word is kept whole rather than split")
}

func TestSummarizeEmptyText(t *testing.T) {
	assert.Equal(t, "", Summarize("", 50))
	assert.Equal(t, "", Summarize("   ", 50))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple",
			text: "First. Second. Third.",
			want: []string{"First.", "Second.", "Third."},
		},
		{
			name: "mixed punctuation",
			text: "Really? Yes! Good.",
			want: []string{"Really?", "Yes!", "Good."},
		},
		{
			name: "no terminal punctuation",
			text: "trailing fragment",
			want: []string{"trailing fragment"},
		},
		{
			name: "decimal not split",
			text: "Section 2.5 covers it. Done.",
			want: []string{"Section 2.5 covers it.", "Done."},
		},
		{
			name: "closing paren",
			text: "Stated (clearly.) Next one.",
			want: []string{"Stated (clearly.)", "Next one."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}

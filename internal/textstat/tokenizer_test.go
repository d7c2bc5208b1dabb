package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tok := DefaultTokenizer()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "  \t\n ", []string{}},
		{"lowercases and drops stop words", "The Linked List is a sequence", []string{"linked", "list", "sequence"}},
		{"punctuation becomes space", "O(log n)-time, halves!", []string{"log", "time", "halves"}},
		{"short tokens dropped", "an ox at my db", []string{}},
		{"digits kept", "runs in 100 steps", []string{"runs", "100", "steps"}},
		{"non-ascii letters split words", "naïve approach", []string{"approach"}},
		{"duplicates preserved", "node node node", []string{"node", "node", "node"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizerCustomStopWords(t *testing.T) {
	tok := NewTokenizer([]string{"Binary"})
	assert.Equal(t, []string{"the", "search"}, tok.Tokenize("the binary search"))
	assert.True(t, tok.IsStopWord("BINARY"))
	assert.False(t, tok.IsStopWord("the"))
}

func TestTokenizerNoStopWords(t *testing.T) {
	tok := NewTokenizer([]string{})
	assert.Equal(t, []string{"the", "and"}, tok.Tokenize("the and"))
}

func TestDefaultStopWordsIsCopy(t *testing.T) {
	words := DefaultStopWords()
	words[0] = "changed"
	assert.True(t, DefaultTokenizer().IsStopWord("a"))
	assert.Len(t, DefaultStopWords(), len(defaultStopWords))
}

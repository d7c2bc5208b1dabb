package analysis

import (
	"time"

	"github.com/abhisek/answerlens/internal/textstat"
)

// Options tunes the analyzer. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// ClusterThreshold is the minimum seed similarity for clustering.
	ClusterThreshold float64
	// MaxClusterGroups caps the groups reported per question.
	MaxClusterGroups int
	// TopKeywords caps the keywords reported per question.
	TopKeywords int
	// MaxMistakes caps the mistake patterns reported per question.
	MaxMistakes int
	// WrongScoreCutoff: a scored submission below this is a wrong answer.
	// Nil means 65; an explicit 0 treats no answer as wrong.
	WrongScoreCutoff *float64
	// DefaultScore stands in for a missing score in averages. Nil means
	// 50; an explicit 0 counts missing scores as zero.
	DefaultScore *float64
	// Parallel computes per-question results concurrently. Output is
	// identical either way.
	Parallel bool
	// StopWords overrides the tokenizer's stop-word list when non-nil.
	StopWords []string
	// Now stamps GeneratedAt. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the standard analysis settings.
func DefaultOptions() Options {
	return Options{
		ClusterThreshold: textstat.DefaultClusterThreshold,
		MaxClusterGroups: 4,
		TopKeywords:      8,
		MaxMistakes:      5,
		WrongScoreCutoff: Score(65),
		DefaultScore:     Score(50),
		Now:              time.Now,
	}
}

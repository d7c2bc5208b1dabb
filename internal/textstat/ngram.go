package textstat

import "strings"

// NGrams returns every contiguous window of n tokens joined by a single
// space. A sequence of length L yields max(0, L-n+1) phrases.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

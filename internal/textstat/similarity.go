package textstat

import "math"

// Cosine returns the cosine similarity of a and b. Absent terms weigh 0,
// and a zero-length vector on either side yields 0.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for _, t := range a.terms {
		wa := a.weights[t]
		normA += wa * wa
		if wb, ok := b.weights[t]; ok {
			dot += wa * wb
		}
	}
	for _, t := range b.terms {
		wb := b.weights[t]
		normB += wb * wb
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return math.Min(dot/denom, 1)
}

package textstat

import "math"

// Vector is a sparse, non-negative term weight vector. Terms keep the order
// in which they first appeared in the source document so that any
// computation over a vector is reproducible.
type Vector struct {
	terms   []string
	weights map[string]float64
}

// NewVector builds a vector from terms in the given order. Terms missing
// from weights are skipped; duplicate terms are kept once.
func NewVector(terms []string, weights map[string]float64) Vector {
	v := Vector{weights: make(map[string]float64, len(terms))}
	for _, t := range terms {
		w, ok := weights[t]
		if !ok {
			continue
		}
		if _, dup := v.weights[t]; dup {
			continue
		}
		v.terms = append(v.terms, t)
		v.weights[t] = w
	}
	return v
}

// Weight returns the weight of term, or 0 when the term is absent.
func (v Vector) Weight(term string) float64 {
	return v.weights[term]
}

// Terms returns the vector's terms in first-appearance order.
func (v Vector) Terms() []string {
	return v.terms
}

// Len is the number of terms present in the vector.
func (v Vector) Len() int {
	return len(v.terms)
}

// Norm is the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, t := range v.terms {
		w := v.weights[t]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Corpus is the vectorized form of an ordered set of documents.
type Corpus struct {
	// Vectors holds one vector per input document, in input order.
	Vectors []Vector
	// Terms lists every distinct term in order of first appearance.
	Terms []string
	// DocFreq counts the documents containing each term.
	DocFreq map[string]int
}

// Vectorize tokenizes each document and weights its terms by
// tf(t,d) * ln((N+1)/(df(t)+1)).
//
// A single-document corpus yields all-zero weights; that follows from the
// formula and is kept as is.
func Vectorize(tok *Tokenizer, docs []string) *Corpus {
	c := &Corpus{
		Vectors: make([]Vector, len(docs)),
		DocFreq: make(map[string]int),
	}

	type termCounts struct {
		order []string
		freq  map[string]int
		total int
	}
	counts := make([]termCounts, len(docs))

	for i, doc := range docs {
		tokens := tok.Tokenize(doc)
		tc := termCounts{freq: make(map[string]int), total: len(tokens)}
		for _, t := range tokens {
			if tc.freq[t] == 0 {
				tc.order = append(tc.order, t)
				if c.DocFreq[t] == 0 {
					c.Terms = append(c.Terms, t)
				}
				c.DocFreq[t]++
			}
			tc.freq[t]++
		}
		counts[i] = tc
	}

	n := float64(len(docs))
	for i, tc := range counts {
		total := float64(max(1, tc.total))
		weights := make(map[string]float64, len(tc.order))
		for _, t := range tc.order {
			tf := float64(tc.freq[t]) / total
			idf := math.Log((n + 1) / (float64(c.DocFreq[t]) + 1))
			weights[t] = tf * idf
		}
		c.Vectors[i] = Vector{terms: tc.order, weights: weights}
	}
	return c
}

// TermTotals sums each term's weight across all documents. The returned
// terms are in first-appearance order, aligned with the totals slice.
func (c *Corpus) TermTotals() ([]string, []float64) {
	totals := make([]float64, len(c.Terms))
	index := make(map[string]int, len(c.Terms))
	for i, t := range c.Terms {
		index[t] = i
	}
	for _, v := range c.Vectors {
		for _, t := range v.terms {
			totals[index[t]] += v.weights[t]
		}
	}
	return c.Terms, totals
}

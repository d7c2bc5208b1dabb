package textstat

// DefaultClusterThreshold is the minimum seed similarity for joining a cluster.
const DefaultClusterThreshold = 0.25

// Cluster is a group of document indices. Members[0] is the seed.
type Cluster struct {
	Members []int
}

// Seed returns the index of the document that opened the cluster.
func (c Cluster) Seed() int {
	return c.Members[0]
}

// Size is the number of documents in the cluster.
func (c Cluster) Size() int {
	return len(c.Members)
}

// ClusterDocuments vectorizes docs and groups them with ClusterVectors.
func ClusterDocuments(tok *Tokenizer, docs []string, threshold float64) []Cluster {
	return ClusterVectors(Vectorize(tok, docs).Vectors, threshold)
}

// ClusterVectors partitions vectors with a single left-to-right pass. Each
// unassigned index opens a cluster and claims every later unassigned index
// whose similarity to it is at least threshold. Members are compared with
// the seed only, never with each other, so the result depends on input
// order. Clusters are returned in the order they were opened.
func ClusterVectors(vectors []Vector, threshold float64) []Cluster {
	assigned := make([]bool, len(vectors))
	var clusters []Cluster

	for i := range vectors {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		c := Cluster{Members: []int{i}}
		for j := i + 1; j < len(vectors); j++ {
			if assigned[j] {
				continue
			}
			if Cosine(vectors[i], vectors[j]) >= threshold {
				c.Members = append(c.Members, j)
				assigned[j] = true
			}
		}
		clusters = append(clusters, c)
	}
	return clusters
}

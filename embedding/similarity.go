package embedding

import "github.com/jeffrydegrande/resemble/types"

// CosineSimilarity calculates the cosine similarity between two embeddings.
// Returns a value between 0.0 and 1.0. If either embedding has zero magnitude,
// including when both are empty, returns 0.0.
func CosineSimilarity(a, b Embedding) float64 {
	// Iterate the smaller map; the product is the same either way
	probe, reference := a.features, b.features
	if len(probe) > len(reference) {
		probe, reference = reference, probe
	}
	dotProduct := dot(probe, reference)

	normA := a.L2Norm()
	normB := b.L2Norm()
	if normA == 0 || normB == 0 {
		return 0
	}

	// Counts are non-negative, so only rounding can leave [0, 1]
	return min(max(dotProduct/(normA*normB), 0), 1)
}

// SimilarityFromCounts computes the similarity of two raw feature maps
func SimilarityFromCounts(a, b types.FeatureMap) float64 {
	return CosineSimilarity(FromCounts(a), FromCounts(b))
}

// dot sums probe[label] * reference[label] over the labels of probe
func dot(probe, reference types.FeatureMap) float64 {
	var sum float64
	for label, v := range probe {
		if w, ok := reference[label]; ok {
			sum += v * w
		}
	}
	return sum
}

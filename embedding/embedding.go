package embedding

import (
	"math"

	"github.com/jeffrydegrande/resemble/types"
)

// Embedding is an immutable wrapper around one feature map.
// The zero value is the empty embedding.
type Embedding struct {
	features types.FeatureMap
}

// FromCounts creates an embedding from a feature count map.
// The map is copied, so later changes to counts do not affect the embedding.
func FromCounts(counts types.FeatureMap) Embedding {
	return Embedding{features: counts.Clone()}
}

// L2Norm computes the Euclidean norm of the embedding vector.
// It is recomputed from the full map on every call.
func (e Embedding) L2Norm() float64 {
	var sum float64
	for _, v := range e.features {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Len returns the number of distinct labels
func (e Embedding) Len() int {
	return len(e.features)
}

// Get returns the count for a label, 0 when absent
func (e Embedding) Get(label types.Label) float64 {
	return e.features[label]
}

// Features returns a copy of the underlying feature map
func (e Embedding) Features() types.FeatureMap {
	return e.features.Clone()
}

// Equal reports whether two embeddings hold equal feature maps
func (e Embedding) Equal(other Embedding) bool {
	return e.features.Equal(other.features)
}

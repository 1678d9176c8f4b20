package types

import "sort"

// Category is the coarse syntactic role of a counted node
type Category string

const (
	CategoryStmt      Category = "Stmt"
	CategoryExpr      Category = "Expr"
	CategoryType      Category = "Type"
	CategoryPat       Category = "Pat"
	CategoryMacro     Category = "Macro"
	CategoryAttribute Category = "Attribute"
	CategoryBlock     Category = "Block"
)

// Label is a feature key of the form "<Category>::<Variant>". Occurrence-only
// categories use the bare category name.
type Label string

// FeatureMap maps feature labels to non-negative occurrence counts.
// Absent labels count as zero.
type FeatureMap map[Label]float64

// Get returns the count for a label, 0 when absent
func (m FeatureMap) Get(label Label) float64 {
	return m[label]
}

// Clone returns an independent copy of the map
func (m FeatureMap) Clone() FeatureMap {
	cp := make(FeatureMap, len(m))
	for label, count := range m {
		cp[label] = count
	}
	return cp
}

// Equal reports whether both maps hold the same labels with the same counts
func (m FeatureMap) Equal(other FeatureMap) bool {
	if len(m) != len(other) {
		return false
	}
	for label, count := range m {
		v, ok := other[label]
		if !ok || v != count {
			return false
		}
	}
	return true
}

// Labels returns the labels present in the map in lexical order
func (m FeatureMap) Labels() []Label {
	labels := make([]Label, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// Total returns the sum of all counts
func (m FeatureMap) Total() float64 {
	var total float64
	for _, count := range m {
		total += count
	}
	return total
}

// Fingerprint is a feature map tagged with the source it was extracted from
type Fingerprint struct {
	Source   string             `toml:"source"`   // Path of the analyzed file
	Features map[string]float64 `toml:"features"` // Label -> count
}

// Match represents the similarity of one candidate to a query
type Match struct {
	Query           string  // Name of the query source
	Candidate       string  // Name of the candidate source
	SimilarityScore float64 // 0.0-1.0 cosine similarity
}

// NewFingerprint tags a feature map with its source name
func NewFingerprint(source string, features FeatureMap) Fingerprint {
	raw := make(map[string]float64, len(features))
	for label, count := range features {
		raw[string(label)] = count
	}
	return Fingerprint{Source: source, Features: raw}
}

// FeatureMap converts the stored features back into a FeatureMap
func (f Fingerprint) FeatureMap() FeatureMap {
	m := make(FeatureMap, len(f.Features))
	for label, count := range f.Features {
		m[Label(label)] = count
	}
	return m
}

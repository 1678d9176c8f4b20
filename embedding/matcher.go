package embedding

import (
	"sort"
	"sync"

	"github.com/jeffrydegrande/resemble/types"
)

// Candidate is a named embedding to rank
type Candidate struct {
	Name      string
	Embedding Embedding
}

// Matcher ranks candidate embeddings by similarity to a query
type Matcher struct {
	SimilarityThreshold float64 // Minimum score for a candidate to be reported
	Limit               int     // Maximum number of matches, 0 for no limit
}

// NewMatcher creates a matcher that reports every candidate
func NewMatcher() *Matcher {
	return &Matcher{
		SimilarityThreshold: 0,
	}
}

// Rank compares query with each candidate and returns the matches at or above
// the threshold, best first. Ties are ordered by candidate name.
func (m *Matcher) Rank(query Candidate, candidates []Candidate) []types.Match {
	var matches []types.Match

	for _, candidate := range candidates {
		similarity := CosineSimilarity(query.Embedding, candidate.Embedding)

		if similarity >= m.SimilarityThreshold {
			matches = append(matches, types.Match{
				Query:           query.Name,
				Candidate:       candidate.Name,
				SimilarityScore: similarity,
			})
		}
	}

	// Sort matches by similarity score (highest first)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SimilarityScore != matches[j].SimilarityScore {
			return matches[i].SimilarityScore > matches[j].SimilarityScore
		}
		return matches[i].Candidate < matches[j].Candidate
	})

	if m.Limit > 0 && len(matches) > m.Limit {
		matches = matches[:m.Limit]
	}

	return matches
}

// Pairs scores every unordered pair of candidates on at most workers
// goroutines. The result is symmetric: scores[i][j] == scores[j][i].
func Pairs(candidates []Candidate, workers int) [][]float64 {
	if workers < 1 {
		workers = 1
	}

	scores := make([][]float64, len(candidates))
	for i := range scores {
		scores[i] = make([]float64, len(candidates))
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i := range candidates {
		for j := i; j < len(candidates); j++ {
			wg.Add(1)
			semaphore <- struct{}{}

			go func(i, j int) {
				defer wg.Done()
				defer func() { <-semaphore }()

				// Each goroutine owns cells (i, j) and (j, i)
				s := CosineSimilarity(candidates[i].Embedding, candidates[j].Embedding)
				scores[i][j] = s
				scores[j][i] = s
			}(i, j)
		}
	}

	wg.Wait()
	return scores
}

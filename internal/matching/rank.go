package matching

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-match/internal/types"
)

// Ranking policy defaults: semantic search keeps everything strictly above
// 0.7; resume-to-job matching keeps the best 10 regardless of score.
const (
	DefaultSearchThreshold = 0.7
	DefaultTopN            = 10
)

// parallelCutoff is the candidate count above which scoring fans out across
// goroutines. Scoring is embarrassingly parallel; the final sort fixes the
// order regardless of computation order.
const parallelCutoff = 256

// Options control filtering and truncation of a ranking.
type Options struct {
	// MinThreshold drops results with similarity <= the threshold when
	// HasThreshold is set.
	MinThreshold float64
	HasThreshold bool
	// TopN truncates the sorted results; 0 means unlimited.
	TopN int
}

// SearchOptions is the semantic-search policy: threshold 0.7, no truncation.
func SearchOptions() Options {
	return Options{MinThreshold: DefaultSearchThreshold, HasThreshold: true}
}

// TopNOptions is the resume-to-job matching policy: no threshold, best n.
func TopNOptions(n int) Options {
	if n <= 0 {
		n = DefaultTopN
	}
	return Options{TopN: n}
}

// Rank scores every candidate against the query and returns results sorted
// strictly descending by similarity, ties keeping first-seen input order.
// Candidates with missing or empty vectors are excluded from the output
// entirely, not scored as zero. A candidate vector whose dimensionality
// differs from the query's is a contract violation and fails the whole
// ranking.
func Rank(query types.Vector, candidates []types.Candidate, opts Options) ([]types.MatchResult, error) {
	if query.IsZero() {
		return nil, fmt.Errorf("query vector is empty")
	}

	scores, err := scoreAll(query, candidates)
	if err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, 0, len(candidates))
	for i, c := range candidates {
		if c.Vector.IsZero() {
			continue
		}
		if opts.HasThreshold && scores[i] <= opts.MinThreshold {
			continue
		}
		results = append(results, types.MatchResult{
			Candidate:  c,
			ID:         c.ID,
			Similarity: scores[i],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if opts.TopN > 0 && len(results) > opts.TopN {
		results = results[:opts.TopN]
	}
	for i := range results {
		results[i].Rank = i
	}
	return results, nil
}

// scoreAll computes per-candidate similarity, in parallel for large sets.
func scoreAll(query types.Vector, candidates []types.Candidate) ([]float64, error) {
	scores := make([]float64, len(candidates))

	score := func(i int) error {
		c := candidates[i]
		if c.Vector.IsZero() {
			return nil
		}
		if c.Vector.Dimension() != query.Dimension() {
			return fmt.Errorf("candidate %q has vector dimension %d, query has %d",
				c.ID, c.Vector.Dimension(), query.Dimension())
		}
		scores[i] = Cosine(query, c.Vector)
		return nil
	}

	if len(candidates) < parallelCutoff {
		for i := range candidates {
			if err := score(i); err != nil {
				return nil, err
			}
		}
		return scores, nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	shard := (len(candidates) + runtime.GOMAXPROCS(0) - 1) / runtime.GOMAXPROCS(0)
	for start := 0; start < len(candidates); start += shard {
		end := start + shard
		if end > len(candidates) {
			end = len(candidates)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := score(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

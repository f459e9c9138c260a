// Package predictor implements the Predictor (spec.md §4.H): Laplace
// smoothing over the batch executor's per-sentence frequency rows,
// scored under a chosen RankingFunc and reported as a rounded -log10
// score. Bucketing shape (unigram map + per-candidate n-gram map) is
// grounded on the original's n_grams/solver/predictor.rs MaxPredictor,
// generalized to the three interchangeable ranking functions and to
// log10-uniform, Laplace-smoothed scoring per spec.md §4.H/§9.
package predictor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/batch"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/corpus"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
)

// PredictionResult is one sentence context's scored candidates.
type PredictionResult struct {
	Context      string             `json:"context"`
	WordExamined string             `json:"word_examined"`
	Results      map[string]float64 `json:"results"`
}

// PredictionResults is the Predictor's full output.
type PredictionResults struct {
	ElapsedMS int64              `json:"elapsed_ms"`
	Results   []PredictionResult `json:"results"`
}

// Predict runs the Predictor over the batch executor's output.
func Predict(tsr *batch.TimedSentenceResults, confusionSet corpus.ConfusionSet, counts corpus.NGramCounts, distinct corpus.DistinctNGramCounts, fn RankingFunc) (*PredictionResults, error) {
	start := time.Now()

	smoothedN := make(map[int]int64, 3)
	for n := 1; n <= 3; n++ {
		smoothedN[n] = counts[n] + distinct[n]
		if smoothedN[n] == 0 {
			return nil, fmt.Errorf("%w: smoothed count for n=%d is zero", ngramerr.ErrDataIntegrity, n)
		}
	}

	results := make([]PredictionResult, 0, len(tsr.Results))
	for _, r := range tsr.Results {
		group := confusionSet.Group(r.WordExamined)
		if group == nil {
			continue
		}

		unigram := make(map[string]int64)
		buckets := make(map[string]map[string]int64) // candidate -> lowercased input -> freq

		for _, row := range r.Results {
			if row.Length == 1 {
				unigram[strings.ToLower(row.Input)] += int64(row.Frequency)
				continue
			}
			candidate := matchCandidate(row.Input, group)
			if candidate == "" {
				continue
			}
			key := strings.ToLower(row.Input)
			if buckets[candidate] == nil {
				buckets[candidate] = make(map[string]int64)
			}
			buckets[candidate][key] += int64(row.Frequency)
		}

		scores := make(map[string]float64, len(buckets))
		for candidate, inputs := range buckets {
			if len(inputs) == 0 {
				continue
			}
			u := float64(unigram[strings.ToLower(candidate)]) / float64(smoothedN[1])

			terms := make([]Term, 0, len(inputs))
			for input, freq := range inputs {
				length := len(strings.Fields(input))
				if length < 1 || length > 3 {
					continue
				}
				c := float64(freq) + 1 // Laplace add-1 per entry
				denom := float64(smoothedN[length])
				if denom == 0 {
					return nil, fmt.Errorf("%w: zero denominator for length %d", ngramerr.ErrDataIntegrity, length)
				}
				terms = append(terms, Term{
					UnigramProb: u,
					Ratio:       c / denom,
					Length:      length,
				})
			}
			if len(terms) == 0 {
				continue
			}

			scalar := fn.Aggregate(terms)
			if scalar <= 0 {
				// A zero unigram count gives zero probability, which has
				// no finite score: the candidate is omitted.
				continue
			}
			score := -math.Log10(scalar)
			scores[candidate] = math.Round(score*1e4) / 1e4
		}

		results = append(results, PredictionResult{
			Context:      r.Sentence,
			WordExamined: r.WordExamined,
			Results:      scores,
		})
	}

	return &PredictionResults{
		ElapsedMS: time.Since(start).Milliseconds(),
		Results:   results,
	}, nil
}

// matchCandidate returns the first group member that case-insensitively
// appears as a substring of input, or "" if none match. Stable over
// group's iteration order, matching the scanner's own stability rule.
func matchCandidate(input string, group []string) string {
	lower := strings.ToLower(input)
	for _, candidate := range group {
		if strings.Contains(lower, strings.ToLower(candidate)) {
			return candidate
		}
	}
	return ""
}

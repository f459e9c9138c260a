// Package ngram implements the N-gram Input Model (spec.md §4.C): a
// polymorphic 2-gram/3-gram input with the accessors the fetcher and
// orchestrator need to pick a template, bind parameters, and report which
// word sits at a given slot. Modeled on the teacher's n-gram token type
// (internal/model/ngram/token.go's NGram.String/Context/LastToken), widened
// here from a single fixed-length accessor set into a varying-index-aware
// one.
package ngram

import (
	"fmt"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/catalog"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
)

// WordFreqPair is a single (word, frequency) result row.
type WordFreqPair struct {
	Word      string `json:"word"`
	Frequency int32  `json:"frequency"`
}

// VaryingSlot is one position's retrieved candidate set.
type VaryingSlot struct {
	Index     int            `json:"index"`
	Word      string         `json:"word"`
	Solutions []WordFreqPair `json:"solutions"`
}

// NGramQueryResult is the result of either get_one or get_varying.
type NGramQueryResult struct {
	ElapsedMS         int64         `json:"elapsed_ms"`
	N                 int           `json:"n"`
	ProvidedNGram     string        `json:"provided_ngram"`
	ProvidedFrequency int32         `json:"provided_frequency"`
	VaryingIndexes    []int         `json:"varying_indexes"`
	Vary              []VaryingSlot `json:"vary"`
}

// Input is the N-gram Input Model abstraction (spec.md §4.C). Indexes are
// 1-based throughout, matching the wire/query-parameter convention.
type Input struct {
	words []string
}

// New constructs an Input from n ordered words. n must be 2 or 3.
func New(words []string) (*Input, error) {
	n := len(words)
	if n != 2 && n != 3 {
		return nil, fmt.Errorf("%w: got %d words, want 2 or 3", ngramerr.ErrUnsupportedN, n)
	}
	for _, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w: empty word", ngramerr.ErrMissingParameter)
		}
	}
	cp := make([]string, n)
	copy(cp, words)
	return &Input{words: cp}, nil
}

// N returns the arity of the input (2 or 3).
func (in *Input) N() int { return len(in.words) }

// String renders the n-gram as a space-joined string, in original casing.
func (in *Input) String() string {
	s := ""
	for i, w := range in.words {
		if i > 0 {
			s += " "
		}
		s += w
	}
	return s
}

// WordAt returns the word at the given 1-based index.
func (in *Input) WordAt(index int) (string, error) {
	if index < 1 || index > len(in.words) {
		return "", fmt.Errorf("%w: index %d out of range [1,%d]", ngramerr.ErrInvalidIndex, index, len(in.words))
	}
	return in.words[index-1], nil
}

// Params returns the positional args for the exact-match template, in
// slot order.
func (in *Input) Params() []string {
	cp := make([]string, len(in.words))
	copy(cp, in.words)
	return cp
}

// Known returns the n-1 words other than the one at index, in ascending
// slot order (i.e. the order the exact-match-minus-one template expects).
func (in *Input) Known(index int) ([]string, error) {
	if index < 1 || index > len(in.words) {
		return nil, fmt.Errorf("%w: index %d out of range [1,%d]", ngramerr.ErrInvalidIndex, index, len(in.words))
	}
	known := make([]string, 0, len(in.words)-1)
	for i, w := range in.words {
		if i+1 == index {
			continue
		}
		known = append(known, w)
	}
	return known, nil
}

// Template returns the exact-match template id when index is nil, or the
// vary-at-index template id otherwise.
func (in *Input) Template(index *int) (catalog.TemplateID, error) {
	n := len(in.words)
	if index == nil {
		if n == 2 {
			return catalog.TwoGramExact, nil
		}
		return catalog.ThreeGramExact, nil
	}
	idx := *index
	if idx < 1 || idx > n {
		return 0, fmt.Errorf("%w: index %d out of range [1,%d]", ngramerr.ErrInvalidIndex, idx, n)
	}
	if n == 2 {
		if idx == 1 {
			return catalog.TwoGramVary1, nil
		}
		return catalog.TwoGramVary2, nil
	}
	switch idx {
	case 1:
		return catalog.ThreeGramVary1, nil
	case 2:
		return catalog.ThreeGramVary2, nil
	default:
		return catalog.ThreeGramVary3, nil
	}
}

// ParseVaryingIndexes validates a vary-parameter list per spec.md §4.C:
// indexes must fall in [1..n], be pairwise distinct, and the list must be
// non-empty.
func ParseVaryingIndexes(indexes []int, n int) error {
	if len(indexes) == 0 {
		return fmt.Errorf("%w: vary list must not be empty", ngramerr.ErrInvalidIndex)
	}
	seen := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 1 || idx > n {
			return fmt.Errorf("%w: index %d out of range [1,%d]", ngramerr.ErrInvalidIndex, idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("%w: duplicate index %d", ngramerr.ErrInvalidIndex, idx)
		}
		seen[idx] = true
	}
	return nil
}

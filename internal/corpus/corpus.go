// Package corpus loads the immutable, process-wide corpus metadata: the
// confusion set and the total/distinct n-gram counts used by the
// predictor's Laplace smoothing. Grounded on the original service's
// lib.rs parse_confusion_set/parse_number_of_ngrams (plain whitespace-
// delimited line parsing, loaded once at startup and never mutated).
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
)

// ConfusionSet is an ordered sequence of candidate-word groups, loaded
// once at startup and never mutated afterwards.
type ConfusionSet [][]string

// Group returns the group containing word, matched case-insensitively, or
// nil if word belongs to no group.
func (cs ConfusionSet) Group(word string) []string {
	lower := strings.ToLower(word)
	for _, group := range cs {
		for _, member := range group {
			if strings.ToLower(member) == lower {
				return group
			}
		}
	}
	return nil
}

// LoadConfusionSet parses one confusion group per line, whitespace-
// delimited candidate words (spec.md §6, CONFUSION_SET_FILE).
func LoadConfusionSet(path string) (ConfusionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open confusion set file: %w", err)
	}
	defer f.Close()
	return parseConfusionSet(f)
}

func parseConfusionSet(r io.Reader) (ConfusionSet, error) {
	var cs ConfusionSet
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		words := strings.Fields(line)
		cs = append(cs, words)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus: scan confusion set file: %w", err)
	}
	return cs, nil
}

// NGramCounts maps n in {1,2,3} to the corpus's total n-gram count.
type NGramCounts map[int]int64

// DistinctNGramCounts maps n in {1,2,3} to the count of distinct n-gram
// types observed in the corpus.
type DistinctNGramCounts map[int]int64

// LoadNGramCounts parses one "n count" pair per line (spec.md §6,
// NUMBER_OF_NGRAMS_FILE / NUMBER_OF_DISTINCT_NGRAMS_FILE share this
// layout).
func LoadNGramCounts(path string) (NGramCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open n-gram counts file: %w", err)
	}
	defer f.Close()
	raw, err := parseCounts(f)
	if err != nil {
		return nil, err
	}
	return NGramCounts(raw), nil
}

// LoadDistinctNGramCounts parses the optional distinct-n-gram-type counts
// file. Required only when the predictor performs Laplace smoothing.
func LoadDistinctNGramCounts(path string) (DistinctNGramCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open distinct n-gram counts file: %w", err)
	}
	defer f.Close()
	raw, err := parseCounts(f)
	if err != nil {
		return nil, err
	}
	return DistinctNGramCounts(raw), nil
}

func parseCounts(r io.Reader) (map[int]int64, error) {
	counts := make(map[int]int64)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed counts line %q", ngramerr.ErrDataIntegrity, line)
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bad n in line %q: %v", ngramerr.ErrDataIntegrity, line, err)
		}
		count, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad count in line %q: %v", ngramerr.ErrDataIntegrity, line, err)
		}
		counts[n] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus: scan counts file: %w", err)
	}
	for n := range counts {
		if n != 1 && n != 2 && n != 3 {
			return nil, fmt.Errorf("%w: invalid n-gram arity %d in counts file", ngramerr.ErrDataIntegrity, n)
		}
	}
	return counts, nil
}

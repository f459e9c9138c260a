// Package confusion implements the Confusion-Set Scanner (spec.md §4.F):
// sentence tokenization, sliding-window candidate extraction, and the
// query-set construction that emits 1/2/3-gram "IN (…)" probes for every
// confusion-set occurrence. Grounded on the original's
// n_grams/solver.rs (parse_text_to_sentences) and
// n_grams/solver/model.rs (process_word_in_sentence / add_to_query /
// extract_context), translated from per-call query-string construction
// into catalog.TemplateID-keyed QueryBuilder values.
package confusion

import (
	"strings"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/catalog"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/corpus"
)

// QueryBuilder is a single scanner-emitted probe (spec.md §3).
type QueryBuilder struct {
	Template      catalog.TemplateID
	StaticParams  []string
	VaryingParams []string
}

// Occurrence is everything the scanner found for one sentence_context: the
// confusion-set member that matched and the probes to execute for it.
type Occurrence struct {
	WordExamined string
	Queries      []QueryBuilder
}

// ParseTextToSentences splits text first on the literal ". ", then each
// resulting fragment on ", ", then strips a trailing '.' from each piece.
// No other punctuation handling. Intentional even though lossy for commas
// inside numerics or quotations (spec.md §9 design notes).
func ParseTextToSentences(text string) []string {
	var result []string
	for _, part := range strings.Split(text, ". ") {
		result = append(result, strings.Split(part, ", ")...)
	}
	for i, s := range result {
		result[i] = strings.TrimSuffix(s, ".")
	}
	return result
}

// Scan runs the full scanner over text against confusionSet, returning an
// ordered mapping (preserving first-seen order) from sentence_context to
// the occurrence found there. Stable iteration over the confusion set and
// the word array; ties in context collide and the first emission wins
// (spec.md §4.F ordering rule).
func Scan(text string, confusionSet corpus.ConfusionSet) (contexts []string, occurrences map[string]Occurrence) {
	occurrences = make(map[string]Occurrence)
	sentences := ParseTextToSentences(text)

	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		lowerSentence := strings.ToLower(sentence)
		for _, group := range confusionSet {
			for _, word := range group {
				if !strings.Contains(lowerSentence, strings.ToLower(word)) {
					continue
				}
				processWordInSentence(word, words, group, &contexts, occurrences)
			}
		}
	}
	return contexts, occurrences
}

func processWordInSentence(word string, words []string, group []string, contexts *[]string, occurrences map[string]Occurrence) {
	lowerWord := strings.ToLower(word)
	for j, w := range words {
		if strings.ToLower(w) != lowerWord {
			continue
		}
		context := extractContext(j, words)
		if _, exists := occurrences[context]; exists {
			continue
		}

		var queries []QueryBuilder

		// Every match always emits a 1-gram probe over the whole group.
		queries = append(queries, QueryBuilder{
			Template:      catalog.OneGramIN,
			StaticParams:  nil,
			VaryingParams: append([]string(nil), group...),
		})

		if j >= 1 {
			if words[j-1] != strings.ToLower(words[j-1]) {
				queries = append(queries, addToQuery(catalog.TwoGramVary2IN, []string{strings.ToLower(words[j-1]), words[j]}, group, 1))
			}
			queries = append(queries, addToQuery(catalog.TwoGramVary2IN, []string{words[j-1], words[j]}, group, 1))
		}
		if j+1 < len(words) {
			if words[j+1] != strings.ToLower(words[j+1]) {
				queries = append(queries, addToQuery(catalog.TwoGramVary1IN, []string{words[j], strings.ToLower(words[j+1])}, group, 0))
			}
			queries = append(queries, addToQuery(catalog.TwoGramVary1IN, []string{words[j], words[j+1]}, group, 0))
		}
		if j >= 2 {
			if words[j-2] != strings.ToLower(words[j-2]) || words[j-1] != strings.ToLower(words[j-1]) {
				queries = append(queries, addToQuery(catalog.ThreeGramVary3IN, []string{strings.ToLower(words[j-2]), strings.ToLower(words[j-1]), words[j]}, group, 2))
			}
			queries = append(queries, addToQuery(catalog.ThreeGramVary3IN, []string{words[j-2], words[j-1], words[j]}, group, 2))
		}
		if j+2 < len(words) {
			if words[j+1] != strings.ToLower(words[j+1]) || words[j+2] != strings.ToLower(words[j+2]) {
				queries = append(queries, addToQuery(catalog.ThreeGramVary1IN, []string{words[j], strings.ToLower(words[j+1]), strings.ToLower(words[j+2])}, group, 0))
			}
			queries = append(queries, addToQuery(catalog.ThreeGramVary1IN, []string{words[j], words[j+1], words[j+2]}, group, 0))
		}

		occurrences[context] = Occurrence{WordExamined: word, Queries: queries}
		*contexts = append(*contexts, context)
	}
}

// extractContext builds the +-2-word window string around index, trimmed.
func extractContext(index int, words []string) string {
	start := index - 2
	if start < 0 {
		start = 0
	}
	end := index + 2
	if end > len(words)-1 {
		end = len(words) - 1
	}
	return strings.TrimSpace(strings.Join(words[start:end+1], " "))
}

// addToQuery removes the varying slot at removeIndex from window, leaving
// the n-1 static params in slot order, and attaches the full confusion
// group as varying params.
func addToQuery(tmpl catalog.TemplateID, window []string, group []string, removeIndex int) QueryBuilder {
	static := make([]string, 0, len(window)-1)
	for i, w := range window {
		if i == removeIndex {
			continue
		}
		static = append(static, w)
	}
	return QueryBuilder{
		Template:      tmpl,
		StaticParams:  static,
		VaryingParams: append([]string(nil), group...),
	}
}

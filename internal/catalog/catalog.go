// Package catalog holds the static, bit-exact set of parameterized n-gram
// lookup templates (spec.md §4.B). The schema assumes one physical table per
// partition-key subset (two for 2-grams, three for 3-grams), so
// that "vary exactly one position" always lands on a single partition. The
// catalog never changes at runtime; an unknown TemplateID is a programming
// error, not a runtime one.
package catalog

import "fmt"

// TemplateID names one entry in the catalog.
type TemplateID int

const (
	// TwoGramExact is the exact 2-gram lookup (word_1, word_2) -> freq.
	TwoGramExact TemplateID = iota
	// TwoGramVary1 returns every (word_1, freq) for a fixed word_2.
	TwoGramVary1
	// TwoGramVary2 returns every (word_2, freq) for a fixed word_1.
	TwoGramVary2
	// ThreeGramExact is the exact 3-gram lookup -> freq.
	ThreeGramExact
	// ThreeGramVary1 returns every (word_1, freq) for fixed (word_2, word_3).
	ThreeGramVary1
	// ThreeGramVary2 returns every (word_2, freq) for fixed (word_1, word_3).
	ThreeGramVary2
	// ThreeGramVary3 returns every (word_3, freq) for fixed (word_1, word_2).
	ThreeGramVary3
	// OneGramIN returns (word, freq) for word IN the confusion candidates.
	OneGramIN
	// TwoGramVary1IN is TwoGramVary1 restricted to word_1 IN candidates.
	TwoGramVary1IN
	// TwoGramVary2IN is TwoGramVary2 restricted to word_2 IN candidates.
	TwoGramVary2IN
	// ThreeGramVary1IN is ThreeGramVary1 restricted to word_1 IN candidates.
	ThreeGramVary1IN
	// ThreeGramVary2IN is ThreeGramVary2 restricted to word_2 IN candidates.
	ThreeGramVary2IN
	// ThreeGramVary3IN is ThreeGramVary3 restricted to word_3 IN candidates.
	ThreeGramVary3IN
)

// cql is the rendered statement text, keyed by TemplateID. The *IN entries
// are missing their closing "(?, ?, ...)" clause: callers append it with
// WithIN, sized to the number of candidates being probed (spec.md §4.G).
var cql = map[TemplateID]string{
	TwoGramExact:   "SELECT freq FROM two_grams_1_pk WHERE word_1 = ? AND word_2 = ?",
	TwoGramVary1:   "SELECT word_1, freq FROM two_grams_2_pk WHERE word_2 = ?",
	TwoGramVary2:   "SELECT word_2, freq FROM two_grams_1_pk WHERE word_1 = ?",
	ThreeGramExact: "SELECT freq FROM three_grams_1_2_pk WHERE word_1 = ? AND word_2 = ? AND word_3 = ?",
	ThreeGramVary1: "SELECT word_1, freq FROM three_grams_2_3_pk WHERE word_2 = ? AND word_3 = ?",
	ThreeGramVary2: "SELECT word_2, freq FROM three_grams_1_3_pk WHERE word_1 = ? AND word_3 = ?",
	ThreeGramVary3: "SELECT word_3, freq FROM three_grams_1_2_pk WHERE word_1 = ? AND word_2 = ?",

	OneGramIN:        "SELECT word, freq FROM one_grams WHERE word IN ",
	TwoGramVary1IN:   "SELECT word_1, freq FROM two_grams_2_pk WHERE word_2 = ? AND word_1 IN ",
	TwoGramVary2IN:   "SELECT word_2, freq FROM two_grams_1_pk WHERE word_1 = ? AND word_2 IN ",
	ThreeGramVary1IN: "SELECT word_1, freq FROM three_grams_2_3_pk WHERE word_2 = ? AND word_3 = ? AND word_1 IN ",
	ThreeGramVary2IN: "SELECT word_2, freq FROM three_grams_1_3_pk WHERE word_1 = ? AND word_3 = ? AND word_2 IN ",
	ThreeGramVary3IN: "SELECT word_3, freq FROM three_grams_1_2_pk WHERE word_1 = ? AND word_2 = ? AND word_3 IN ",
}

// CQL returns the rendered statement text for id. It panics on an unknown
// id: the catalog is closed and a miss here is always a coding mistake.
func CQL(id TemplateID) string {
	q, ok := cql[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown template id %d", id))
	}
	return q
}

// WithIN appends an "(?, ?, ...)" placeholder group sized to n to an *IN
// template, per spec.md §4.G's "the IN (?,?,…) is expanded by appending".
func WithIN(id TemplateID, n int) string {
	if n <= 0 {
		panic("catalog: WithIN requires n > 0")
	}
	q := CQL(id)
	q += "("
	for i := 0; i < n; i++ {
		if i > 0 {
			q += ", "
		}
		q += "?"
	}
	q += ")"
	return q
}

// OneGramExact looks up a single word's frequency from one_grams.
const OneGramExact = "SELECT freq FROM one_grams WHERE word = ?"

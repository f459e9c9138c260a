package catalog

import (
	"strings"
	"testing"
)

func TestWithIN(t *testing.T) {
	tests := []struct {
		name string
		id   TemplateID
		n    int
		want string
	}{
		{"one gram single", OneGramIN, 1, "SELECT word, freq FROM one_grams WHERE word IN (?)"},
		{"one gram triple", OneGramIN, 3, "SELECT word, freq FROM one_grams WHERE word IN (?, ?, ?)"},
		{"two gram vary1 double", TwoGramVary1IN, 2, "SELECT word_1, freq FROM two_grams_2_pk WHERE word_2 = ? AND word_1 IN (?, ?)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithIN(tt.id, tt.n)
			if got != tt.want {
				t.Fatalf("WithIN(%v, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
			}
		})
	}
}

func TestWithIN_PanicsOnNonPositiveN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for n <= 0")
		}
	}()
	WithIN(OneGramIN, 0)
}

func TestCQL_PanicsOnUnknownID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown template id")
		}
	}()
	CQL(TemplateID(999))
}

func TestCQL_AllTemplatesRender(t *testing.T) {
	ids := []TemplateID{
		TwoGramExact, TwoGramVary1, TwoGramVary2,
		ThreeGramExact, ThreeGramVary1, ThreeGramVary2, ThreeGramVary3,
		OneGramIN, TwoGramVary1IN, TwoGramVary2IN,
		ThreeGramVary1IN, ThreeGramVary2IN, ThreeGramVary3IN,
	}
	for _, id := range ids {
		q := CQL(id)
		if !strings.Contains(q, "SELECT") {
			t.Fatalf("template %v did not render a SELECT statement: %q", id, q)
		}
	}
}

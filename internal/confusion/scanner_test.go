package confusion

import (
	"reflect"
	"testing"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/catalog"
)

func TestParseTextToSentences(t *testing.T) {
	text := "Danas sam poslao dva zahtijeva prodekanu za nastavu. On od mene zahtjeva da dolazim na nastavu. Ona zahtijeva. Krleža sve oduševio svojim dijelom. Svidjela mu se plaća koju je dobio. Uz velike napore, uspio je dobiti posao."

	want := []string{
		"Danas sam poslao dva zahtijeva prodekanu za nastavu",
		"On od mene zahtjeva da dolazim na nastavu",
		"Ona zahtijeva",
		"Krleža sve oduševio svojim dijelom",
		"Svidjela mu se plaća koju je dobio",
		"Uz velike napore",
		"uspio je dobiti posao",
	}

	got := ParseTextToSentences(text)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTextToSentences() = %#v, want %#v", got, want)
	}
}

func TestExtractContext(t *testing.T) {
	words := []string{"I", "saw", "their", "dog", "yesterday"}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"middle", 2, "I saw their dog yesterday"},
		{"start", 0, "I saw their"},
		{"end", 4, "their dog yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractContext(tt.index, words)
			if got != tt.want {
				t.Fatalf("extractContext(%d, %v) = %q, want %q", tt.index, words, got, tt.want)
			}
		})
	}
}

func TestScan_BasicTwoSentences(t *testing.T) {
	confusionSet := [][]string{{"their", "there"}}
	text := "I saw their dog. There was noise."

	contexts, occurrences := Scan(text, confusionSet)

	if len(contexts) != 2 {
		t.Fatalf("expected 2 contexts, got %d: %v", len(contexts), contexts)
	}

	for _, c := range contexts {
		occ, ok := occurrences[c]
		if !ok {
			t.Fatalf("missing occurrence for context %q", c)
		}
		if len(occ.Queries) == 0 {
			t.Fatalf("expected at least one query for context %q", c)
		}
		// Every occurrence always emits a 1-gram probe first.
		if occ.Queries[0].Template != catalog.OneGramIN {
			t.Fatalf("expected first probe to be OneGramIN, got %v", occ.Queries[0].Template)
		}
	}
}

func TestScan_DeduplicatesIdenticalContexts(t *testing.T) {
	confusionSet := [][]string{{"a", "b"}}
	text := "x a b y"

	contexts, occurrences := Scan(text, confusionSet)

	seen := make(map[string]bool)
	for _, c := range contexts {
		if seen[c] {
			t.Fatalf("duplicate context %q in scan output", c)
		}
		seen[c] = true
	}
	if len(occurrences) != len(contexts) {
		t.Fatalf("occurrences map size %d does not match contexts slice size %d", len(occurrences), len(contexts))
	}
}

func TestAddToQuery_RemovesVaryingSlot(t *testing.T) {
	group := []string{"a", "b"}
	qb := addToQuery(catalog.TwoGramVary1IN, []string{"word", "neighbor"}, group, 0)

	if len(qb.StaticParams) != 1 || qb.StaticParams[0] != "neighbor" {
		t.Fatalf("StaticParams = %v, want [neighbor]", qb.StaticParams)
	}
	if !reflect.DeepEqual(qb.VaryingParams, group) {
		t.Fatalf("VaryingParams = %v, want %v", qb.VaryingParams, group)
	}
}

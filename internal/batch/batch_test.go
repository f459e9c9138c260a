package batch

import (
	"testing"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/catalog"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/confusion"
)

func TestBuildResult_ReconstructsInputByTemplate(t *testing.T) {
	tests := []struct {
		name string
		qb   confusion.QueryBuilder
		word string
		want string
	}{
		{
			name: "one gram",
			qb:   confusion.QueryBuilder{Template: catalog.OneGramIN},
			word: "there",
			want: "there",
		},
		{
			name: "two gram vary1 puts word first",
			qb:   confusion.QueryBuilder{Template: catalog.TwoGramVary1IN, StaticParams: []string{"dog"}},
			word: "their",
			want: "their dog",
		},
		{
			name: "two gram vary2 puts word second",
			qb:   confusion.QueryBuilder{Template: catalog.TwoGramVary2IN, StaticParams: []string{"saw"}},
			word: "their",
			want: "saw their",
		},
		{
			name: "three gram vary3 puts word last",
			qb:   confusion.QueryBuilder{Template: catalog.ThreeGramVary3IN, StaticParams: []string{"I", "saw"}},
			word: "their",
			want: "I saw their",
		},
		{
			name: "three gram vary1 puts word first",
			qb:   confusion.QueryBuilder{Template: catalog.ThreeGramVary1IN, StaticParams: []string{"dog", "barked"}},
			word: "their",
			want: "their dog barked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildResult(tt.qb, tt.word, 5)
			if got.Input != tt.want {
				t.Fatalf("buildResult(...).Input = %q, want %q", got.Input, tt.want)
			}
			if got.Frequency != 5 {
				t.Fatalf("buildResult(...).Frequency = %d, want 5", got.Frequency)
			}
		})
	}
}

func TestBuildResult_LengthMatchesTokenCount(t *testing.T) {
	qb := confusion.QueryBuilder{Template: catalog.ThreeGramVary3IN, StaticParams: []string{"I", "saw"}}
	got := buildResult(qb, "their", 1)
	if got.Length != 3 {
		t.Fatalf("Length = %d, want 3", got.Length)
	}
}

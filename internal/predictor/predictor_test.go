package predictor

import (
	"math"
	"testing"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/batch"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/corpus"
)

func TestPredict_MaxScoresWorkedExample(t *testing.T) {
	// Mirrors spec.md §8's concrete Max-predictor scenario: unigram row
	// {their:200}, 2-gram rows {"saw their":40,"saw there":0}, 3-gram
	// rows {"I saw their":10,"I saw there":0}.
	tsr := &batch.TimedSentenceResults{
		Results: []batch.SentenceResult{
			{
				Sentence:     "saw their dog",
				WordExamined: "their",
				Results: []batch.QueryResult{
					{Input: "their", Frequency: 200, Length: 1},
					{Input: "there", Frequency: 0, Length: 1},
					{Input: "saw their", Frequency: 40, Length: 2},
					{Input: "saw there", Frequency: 0, Length: 2},
					{Input: "I saw their", Frequency: 10, Length: 3},
					{Input: "I saw there", Frequency: 0, Length: 3},
				},
			},
		},
	}

	confusionSet := corpus.ConfusionSet{{"their", "there"}}
	counts := corpus.NGramCounts{1: 1_000_000, 2: 100_000, 3: 10_000}
	distinct := corpus.DistinctNGramCounts{1: 100_000, 2: 10_000, 3: 1_000}

	results, err := Predict(tsr, confusionSet, counts, distinct, Max{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results.Results) != 1 {
		t.Fatalf("expected 1 prediction result, got %d", len(results.Results))
	}

	n1 := float64(counts[1] + distinct[1])
	n2 := float64(counts[2] + distinct[2])
	n3 := float64(counts[3] + distinct[3])
	u := 200.0 / n1
	p2 := u * ((40.0 + 1) / n2)
	p3 := u * ((10.0 + 1) / n3)
	max := p2
	if p3 > max {
		max = p3
	}
	want := math.Round(-math.Log10(max)*1e4) / 1e4

	got, ok := results.Results[0].Results["their"]
	if !ok {
		t.Fatalf("missing score for candidate %q", "their")
	}
	if got != want {
		t.Fatalf("score for their = %v, want %v", got, want)
	}
}

func TestPredict_SkipsSentenceWithNoConfusionGroup(t *testing.T) {
	tsr := &batch.TimedSentenceResults{
		Results: []batch.SentenceResult{
			{Sentence: "hello world", WordExamined: "unrelated"},
		},
	}
	confusionSet := corpus.ConfusionSet{{"their", "there"}}
	counts := corpus.NGramCounts{1: 10, 2: 10, 3: 10}
	distinct := corpus.DistinctNGramCounts{1: 10, 2: 10, 3: 10}

	results, err := Predict(tsr, confusionSet, counts, distinct, Max{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results.Results) != 0 {
		t.Fatalf("expected 0 prediction results, got %d", len(results.Results))
	}
}

func TestPredict_ZeroDenominatorIsDataIntegrityError(t *testing.T) {
	tsr := &batch.TimedSentenceResults{}
	confusionSet := corpus.ConfusionSet{{"their", "there"}}
	counts := corpus.NGramCounts{1: 0, 2: 0, 3: 0}
	distinct := corpus.DistinctNGramCounts{1: 0, 2: 0, 3: 0}

	_, err := Predict(tsr, confusionSet, counts, distinct, Max{})
	if err == nil {
		t.Fatal("expected data integrity error for zero smoothed counts")
	}
}

// Package batch implements the Batch Executor (spec.md §4.G): runs the
// confusion scanner's probes concurrently, attributes each result row to
// its originating sentence context, and zero-fills rows for candidates
// the store didn't return. Grounded on the original's
// n_grams/solver/model.rs execute_queries (tokio::spawn fan-out + mpsc
// channel collection), translated to an errgroup fan-out over a buffered
// channel.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/catalog"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/confusion"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/store"
)

// QueryResult is one materialized row, attributed to its originating
// probe (spec.md §3).
type QueryResult struct {
	Input     string `json:"input"`
	Frequency int32  `json:"frequency"`
	Length    int32  `json:"length"`
}

// SentenceResult groups every QueryResult produced for one sentence
// context (spec.md §3).
type SentenceResult struct {
	Sentence     string
	WordExamined string
	Results      []QueryResult
}

// TimedSentenceResults is the Batch Executor's full output.
type TimedSentenceResults struct {
	ElapsedMS int64
	Results   []SentenceResult
}

// Execute runs every (context, QueryBuilder) probe concurrently and
// groups the results by context, preserving the enqueue order of
// contexts (spec.md §5 ordering guarantee).
func Execute(ctx context.Context, sess *store.Session, contexts []string, occurrences map[string]confusion.Occurrence) (*TimedSentenceResults, error) {
	start := time.Now()

	type job struct {
		context string
		query   confusion.QueryBuilder
	}
	type msg struct {
		context string
		result  QueryResult
	}

	var jobs []job
	for _, c := range contexts {
		occ := occurrences[c]
		for _, q := range occ.Queries {
			jobs = append(jobs, job{context: c, query: q})
		}
	}

	msgs := make(chan msg, 64)
	g, gctx := errgroup.WithContext(ctx)

	for _, j := range jobs {
		j := j
		g.Go(func() error {
			rows, err := runProbe(gctx, sess, j.query)
			if err != nil {
				return err
			}
			for _, row := range rows {
				select {
				case msgs <- msg{context: j.context, result: row}:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	grouped := make(map[string][]QueryResult)
	go func() {
		defer close(done)
		for m := range msgs {
			grouped[m.context] = append(grouped[m.context], m.result)
		}
	}()

	err := g.Wait()
	close(msgs)
	<-done
	if err != nil {
		return nil, err
	}

	results := make([]SentenceResult, 0, len(contexts))
	for _, c := range contexts {
		occ := occurrences[c]
		results = append(results, SentenceResult{
			Sentence:     c,
			WordExamined: occ.WordExamined,
			Results:      grouped[c],
		})
	}

	return &TimedSentenceResults{
		ElapsedMS: time.Since(start).Milliseconds(),
		Results:   results,
	}, nil
}

// runProbe prepares and executes a single probe, expanding its IN clause
// to varying_params.len() placeholders, reconstructs the `input` n-gram
// string for each returned row, and zero-fills any candidate absent from
// the stream (spec.md §4.G steps 1-5).
func runProbe(ctx context.Context, sess *store.Session, qb confusion.QueryBuilder) ([]QueryResult, error) {
	cqlText := catalog.WithIN(qb.Template, len(qb.VaryingParams))
	stmt, err := sess.Prepare(cqlText, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ngramerr.ErrPrepareFailed, err)
	}

	params := make([]interface{}, 0, len(qb.StaticParams)+len(qb.VaryingParams))
	for _, p := range qb.StaticParams {
		params = append(params, p)
	}
	for _, p := range qb.VaryingParams {
		params = append(params, p)
	}

	stream := sess.ExecuteStream(ctx, stmt, params...)

	seen := make(map[string]bool, len(qb.VaryingParams))
	var rows []QueryResult
	for {
		word, freq, ok, err := stream.ScanWordFreq()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ngramerr.ErrRowDecodeFailed, err)
		}
		if !ok {
			break
		}
		seen[strings.ToLower(word)] = true
		rows = append(rows, buildResult(qb, word, freq))
	}

	for _, candidate := range qb.VaryingParams {
		if seen[strings.ToLower(candidate)] {
			continue
		}
		rows = append(rows, buildResult(qb, candidate, 0))
	}

	return rows, nil
}

// buildResult reconstructs the full n-gram `input` string for a returned
// word by inserting it back into the probe's static_params at the slot
// its template varies, determined by TemplateID rather than by
// string-sniffing the rendered CQL (spec.md §4.G step 4).
func buildResult(qb confusion.QueryBuilder, word string, freq int32) QueryResult {
	var words []string
	switch qb.Template {
	case catalog.OneGramIN:
		words = []string{word}
	case catalog.TwoGramVary1IN:
		words = []string{word, qb.StaticParams[0]}
	case catalog.TwoGramVary2IN:
		words = []string{qb.StaticParams[0], word}
	case catalog.ThreeGramVary1IN:
		words = []string{word, qb.StaticParams[0], qb.StaticParams[1]}
	case catalog.ThreeGramVary2IN:
		words = []string{qb.StaticParams[0], word, qb.StaticParams[1]}
	case catalog.ThreeGramVary3IN:
		words = []string{qb.StaticParams[0], qb.StaticParams[1], word}
	}
	input := strings.Join(words, " ")
	return QueryResult{
		Input:     input,
		Frequency: freq,
		Length:    int32(len(words)),
	}
}

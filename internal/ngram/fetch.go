package ngram

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/catalog"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/store"
)

// Fetch runs the Word-Frequency Fetcher (spec.md §4.D): choose the
// template for varyingIndex, bind input's known words, stream rows, sort
// the materialized pairs by frequency descending (stable), and return
// them. Not-found is not an error — it returns an empty slice.
func Fetch(ctx context.Context, sess *store.Session, in *Input, varyingIndex int) ([]WordFreqPair, error) {
	tmplID, err := in.Template(&varyingIndex)
	if err != nil {
		return nil, err
	}
	known, err := in.Known(varyingIndex)
	if err != nil {
		return nil, err
	}

	stmt, err := sess.Prepare(catalog.CQL(tmplID), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ngramerr.ErrPrepareFailed, err)
	}

	params := make([]interface{}, len(known))
	for i, w := range known {
		params[i] = w
	}

	stream := sess.ExecuteStream(ctx, stmt, params...)
	var pairs []WordFreqPair
	for {
		word, freq, ok, err := stream.ScanWordFreq()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ngramerr.ErrRowDecodeFailed, err)
		}
		if !ok {
			break
		}
		pairs = append(pairs, WordFreqPair{Word: word, Frequency: freq})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Frequency != pairs[j].Frequency {
			return pairs[i].Frequency > pairs[j].Frequency
		}
		return pairs[i].Word < pairs[j].Word
	})
	return pairs, nil
}

// GetOne runs the exact-match template (spec.md §4.E get_one) and returns
// an NGramQueryResult with empty varying_indexes/vary.
func GetOne(ctx context.Context, sess *store.Session, in *Input) (*NGramQueryResult, error) {
	start := time.Now()

	tmplID, err := in.Template(nil)
	if err != nil {
		return nil, err
	}
	stmt, err := sess.Prepare(catalog.CQL(tmplID), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ngramerr.ErrPrepareFailed, err)
	}

	params := make([]interface{}, 0, in.N())
	for _, w := range in.Params() {
		params = append(params, w)
	}

	stream := sess.ExecuteStream(ctx, stmt, params...)
	freq, ok, err := stream.ScanFreq()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ngramerr.ErrRowDecodeFailed, err)
	}
	if !ok {
		freq = 0
	}

	return &NGramQueryResult{
		ElapsedMS:         time.Since(start).Milliseconds(),
		N:                 in.N(),
		ProvidedNGram:     in.String(),
		ProvidedFrequency: freq,
		VaryingIndexes:    []int{},
		Vary:              []VaryingSlot{},
	}, nil
}

// GetVarying runs the Varying-Query Orchestrator (spec.md §4.E): fans out
// Fetch across every requested varying index concurrently, records the
// provided n-gram's own frequency from the first slot to complete, and
// truncates each slot's solutions to amount entries (negative amount
// disables truncation).
func GetVarying(ctx context.Context, sess *store.Session, in *Input, varyingIndexes []int, amount int) (*NGramQueryResult, error) {
	if err := ParseVaryingIndexes(varyingIndexes, in.N()); err != nil {
		return nil, err
	}

	start := time.Now()

	type slotMsg struct {
		slot VaryingSlot
	}

	msgs := make(chan slotMsg, len(varyingIndexes))

	g, gctx := errgroup.WithContext(ctx)
	for _, idx := range varyingIndexes {
		idx := idx
		g.Go(func() error {
			word, err := in.WordAt(idx)
			if err != nil {
				return err
			}
			pairs, err := Fetch(gctx, sess, in, idx)
			if err != nil {
				return err
			}
			select {
			case msgs <- slotMsg{slot: VaryingSlot{Index: idx, Word: word, Solutions: pairs}}:
			case <-gctx.Done():
			}
			return nil
		})
	}

	// Collector: records provided_frequency from the first slot that
	// completes, preserving the spec's documented non-determinism
	// (spec.md §9 Open Question — any slot's own-word lookup carries the
	// same frequency, so reading from whichever arrives first is safe).
	collected := make(map[int]VaryingSlot, len(varyingIndexes))
	var providedFreq int32
	gotFirst := false

	done := make(chan struct{})
	go func() {
		defer close(done)
		// msgs is closed after g.Wait, so this loop ends even when a task
		// fails; it does not watch gctx, which Wait cancels while slots
		// may still be buffered.
		for range varyingIndexes {
			m, ok := <-msgs
			if !ok {
				return
			}
			collected[m.slot.Index] = m.slot
			if !gotFirst {
				gotFirst = true
				for _, p := range m.slot.Solutions {
					if p.Word == m.slot.Word {
						providedFreq = p.Frequency
						break
					}
				}
			}
		}
	}()

	err := g.Wait()
	close(msgs)
	<-done
	if err != nil {
		return nil, err
	}

	vary := make([]VaryingSlot, 0, len(varyingIndexes))
	for _, idx := range varyingIndexes {
		slot, ok := collected[idx]
		if !ok {
			continue
		}
		if amount >= 0 && len(slot.Solutions) > amount {
			slot.Solutions = slot.Solutions[:amount]
		}
		vary = append(vary, slot)
	}

	return &NGramQueryResult{
		ElapsedMS:         time.Since(start).Milliseconds(),
		N:                 in.N(),
		ProvidedNGram:     in.String(),
		ProvidedFrequency: providedFreq,
		VaryingIndexes:    varyingIndexes,
		Vary:              vary,
	}, nil
}

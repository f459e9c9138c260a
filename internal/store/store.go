// Package store owns the single logical connection to the n-gram corpus
// store and the prepared-statement cache in front of it (spec.md §4.A).
// It wraps gocql, the Go driver for the ScyllaDB/Cassandra CQL protocol the
// corpus store speaks.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/gocql/gocql"
	"go.uber.org/zap"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
)

// Statement is a cached, consistency-bound handle to a CQL query string.
// gocql prepares statements lazily and caches them by text internally; this
// wrapper exists so callers work with spec.md's prepare/execute contract
// instead of reaching into the driver directly, and so the consistency
// level travels with the statement rather than being re-specified per call.
type Statement struct {
	cql         string
	consistency gocql.Consistency
}

// Session is the process-wide handle to the corpus store. Safe for
// concurrent use: the underlying gocql.Session multiplexes over a
// connection pool, and Prepare's cache insertion is first-writer-wins: a
// later writer for the same text gets the already cached handle.
type Session struct {
	cql    *gocql.Session
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*Statement
}

// Config configures a new Session.
type Config struct {
	// URI is host:port, e.g. "127.0.0.1:9042" (spec.md §6, SCYLLA_URI).
	URI string
	// Keyspace is the corpus keyspace, e.g. "n_grams".
	Keyspace string
	// Consistency is the cluster-wide default consistency level. Zero value
	// resolves to gocql.One, matching spec.md §4.A's "defaults to ONE".
	// Statements from Prepare carry their own level (gocql.One when 0 is
	// passed), which takes precedence over this default.
	Consistency gocql.Consistency
}

// Open connects to the corpus store. A connection failure here is fatal at
// startup (spec.md §6 "Exit behavior").
func Open(cfg Config, logger *zap.Logger) (*Session, error) {
	cluster := gocql.NewCluster(cfg.URI)
	cluster.Keyspace = cfg.Keyspace
	consistency := cfg.Consistency
	if consistency == 0 {
		consistency = gocql.One
	}
	cluster.Consistency = consistency

	cqlSession, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ngramerr.ErrStoreUnavailable, cfg.URI, err)
	}

	logger.Info("connected to corpus store", zap.String("uri", cfg.URI), zap.String("keyspace", cfg.Keyspace))

	return &Session{
		cql:    cqlSession,
		logger: logger,
		cache:  make(map[string]*Statement),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Session) Close() {
	s.cql.Close()
}

// Prepare returns the cached Statement for text, preparing and caching it
// on first use. Concurrent first callers race; the first to finish wins,
// and later callers simply reuse whichever handle landed in the cache
// (spec.md §4.A: "the first caller wins a race, subsequent callers receive
// the cached handle").
func (s *Session) Prepare(text string, consistency gocql.Consistency) (*Statement, error) {
	s.mu.Lock()
	if cached, ok := s.cache[text]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	if consistency == 0 {
		consistency = gocql.One
	}

	// gocql prepares lazily on first Exec/Iter; there is no separate
	// "prepare" round trip to validate against here, so a malformed CQL
	// template only surfaces on first execution. Nothing at startup
	// executes the catalog statements, so such an error is reported by the
	// first request that uses the template, not when the server starts.
	stmt := &Statement{cql: text, consistency: consistency}

	s.mu.Lock()
	if cached, ok := s.cache[text]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.cache[text] = stmt
	s.mu.Unlock()

	return stmt, nil
}

// RowStream yields result rows lazily; EmptyResult is not an error, it
// simply yields nothing (spec.md §4.A).
type RowStream struct {
	iter *gocql.Iter
}

// ScanWordFreq reads the next (word, freq) row. ok is false once the stream
// is exhausted.
func (r *RowStream) ScanWordFreq() (word string, freq int32, ok bool, err error) {
	if !r.iter.Scan(&word, &freq) {
		return "", 0, false, r.iter.Close()
	}
	return word, freq, true, nil
}

// ScanFreq reads the next freq-only row (used by exact-match templates).
func (r *RowStream) ScanFreq() (freq int32, ok bool, err error) {
	if !r.iter.Scan(&freq) {
		return 0, false, r.iter.Close()
	}
	return freq, true, nil
}

// Close releases the iterator early (used on cancellation).
func (r *RowStream) Close() error {
	return r.iter.Close()
}

// ExecuteStream binds params to stmt and streams the result rows.
func (s *Session) ExecuteStream(ctx context.Context, stmt *Statement, params ...interface{}) *RowStream {
	q := s.cql.Query(stmt.cql, params...).WithContext(ctx).Consistency(stmt.consistency)
	return &RowStream{iter: q.Iter()}
}

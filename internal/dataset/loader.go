package dataset

import (
	"context"
	"errors"
	"sync"
)

// ErrBucketRequired indicates the remote source was selected without a bucket.
var ErrBucketRequired = errors.New("S3_BUCKET is required when USE_S3=true")

// Loader caches the dataset snapshot for the process lifetime. The first
// successful fetch wins; reloading at runtime is not supported. Every call
// returns a deep copy, so callers cannot mutate the shared snapshot.
type Loader struct {
	source Source

	mu     sync.Mutex
	cached *WideTable
}

// NewLoader constructs a Loader over the given source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the cached snapshot, fetching it on first use. A failed
// fetch leaves the cache empty so a later call can retry.
func (l *Loader) Load(ctx context.Context) (WideTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached.Clone(), nil
	}

	table, err := l.source.Fetch(ctx)
	if err != nil {
		return WideTable{}, err
	}
	l.cached = &table
	return table.Clone(), nil
}

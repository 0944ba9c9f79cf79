// Package index maintains the in-memory vector index over catalog item
// embeddings. It is rebuilt from persisted vectors at startup and mutated in
// lock-step with the catalog: every indexed identity has exactly one catalog
// entry, and contract violations (duplicate insert, unknown remove, wrong
// dimension) are hard errors so callers can detect catalog/index drift.
package index

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/manntalati/smart-wardrobe/internal/core/common"
)

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrDuplicateIdentity = errors.New("identity already indexed")
	ErrNotFound          = errors.New("identity not indexed")
)

type Result struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// Index answers nearest-neighbor queries by cosine similarity. Vectors are
// L2-normalized on insert so queries reduce to inner products. Concurrent
// queries share a read lock; mutations take the write lock, so a query never
// observes a half-applied insert or removal.
type Index struct {
	mu      sync.RWMutex
	dim     int
	vectors map[int64][]float32
}

func New(dimension int) *Index {
	return &Index{
		dim:     dimension,
		vectors: make(map[int64][]float32),
	}
}

func (ix *Index) Dimension() int {
	return ix.dim
}

func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

func (ix *Index) Has(id int64) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.vectors[id]
	return ok
}

// Insert adds a vector under a new identity. A failed insert leaves the
// index unchanged.
func (ix *Index) Insert(id int64, vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("%w: got %d, index dimension is %d", ErrDimensionMismatch, len(vec), ix.dim)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.vectors[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateIdentity, id)
	}
	ix.vectors[id] = common.Normalized(vec)
	return nil
}

// Replace is the delete-then-insert variant for re-classification. Unlike
// Insert it accepts an identity that is already present.
func (ix *Index) Replace(id int64, vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("%w: got %d, index dimension is %d", ErrDimensionMismatch, len(vec), ix.dim)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectors[id] = common.Normalized(vec)
	return nil
}

// Remove deletes the vector for an identity. An unknown identity is an
// error, not a no-op: it means the index and the catalog have drifted.
func (ix *Index) Remove(id int64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.vectors[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(ix.vectors, id)
	return nil
}

// Query returns up to k nearest neighbors by cosine similarity, skipping the
// excluded identities. Fewer than k results are returned when the index
// holds fewer eligible vectors. Ties break on ascending identity so results
// are stable for a fixed index state.
func (ix *Index) Query(vec []float32, k int, exclude ...int64) ([]Result, error) {
	if len(vec) != ix.dim {
		return nil, fmt.Errorf("%w: got %d, index dimension is %d", ErrDimensionMismatch, len(vec), ix.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	skip := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	query := common.Normalized(vec)

	ix.mu.RLock()
	results := make([]Result, 0, len(ix.vectors))
	for id, stored := range ix.vectors {
		if skip[id] {
			continue
		}
		results = append(results, Result{ID: id, Score: common.Dot(query, stored)})
	}
	ix.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Rebuild replaces the index contents with the given vectors. It is the
// required startup step that restores the index from the catalog's persisted
// embeddings; vectors of the wrong dimension abort the whole rebuild.
func (ix *Index) Rebuild(vectors map[int64][]float32) error {
	fresh := make(map[int64][]float32, len(vectors))
	for id, vec := range vectors {
		if len(vec) != ix.dim {
			return fmt.Errorf("%w: item %d has %d, index dimension is %d", ErrDimensionMismatch, id, len(vec), ix.dim)
		}
		fresh[id] = common.Normalized(vec)
	}
	ix.mu.Lock()
	ix.vectors = fresh
	ix.mu.Unlock()
	return nil
}

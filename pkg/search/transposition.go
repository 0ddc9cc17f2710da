package search

import (
	"fmt"
	"sync"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/eval"
)

// Entry is a transposition table record (spec.md §3, §4.7): the position's search result at the
// depth it was evaluated, and an optional best move. Quiescence nodes (depth 0) are not cached --
// the negamax protocol (§4.8.1) never probes or stores for them, since their bound is already
// tightly scoped to the current alpha-beta window and re-deriving it is cheap.
type Entry struct {
	Eval      eval.Centipawns
	EvalDepth int

	HasBestMove bool
	BestMove    board.Move
}

// Table is a shared map from position hash to Entry, safe for concurrent probing and storing
// from multiple Lazy-SMP workers (spec.md §4.7).
type Table interface {
	// Probe returns the stored entry for hash, if present.
	Probe(hash board.ZobristHash) (Entry, bool)
	// Store writes entry under the depth-preference replacement policy: an existing entry with
	// a greater EvalDepth is kept; otherwise the new entry overwrites it.
	Store(hash board.ZobristHash, entry Entry)

	// Len returns the number of entries currently stored.
	Len() int
	// Reset clears every entry, used on UCI ucinewgame.
	Reset()
}

// mutexTable is a single mutex guarding a plain Go map. Spec.md §4.7 explicitly permits this
// discipline ("a single mutex around the whole map is acceptable; a sharded map is
// preferable") over a sharded or lock-free scheme.
type mutexTable struct {
	mu sync.Mutex
	m  map[board.ZobristHash]Entry
}

// NewTable constructs an empty, concurrency-safe transposition table.
func NewTable() Table {
	return &mutexTable{m: make(map[board.ZobristHash]Entry)}
}

func (t *mutexTable) Probe(hash board.ZobristHash) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.m[hash]
	return e, ok
}

func (t *mutexTable) Store(hash board.ZobristHash, entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.m[hash]; ok && existing.EvalDepth > entry.EvalDepth {
		return
	}
	t.m[hash] = entry
}

func (t *mutexTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.m)
}

func (t *mutexTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.m = make(map[board.ZobristHash]Entry)
}

func (t *mutexTable) String() string {
	return fmt.Sprintf("Table[entries=%v]", t.Len())
}

package board

import (
	"math"
	"sort"
)

// MovePriority is the move ordering key; higher sorts first (spec.md §4.8.2).
type MovePriority int32

// PriorityFn assigns an ordering priority to a move.
type PriorityFn func(m Move) MovePriority

// HintFirst wraps fn so that the given hint move (typically a transposition-table best move)
// always sorts first, regardless of its own priority.
func HintFirst(hint Move, fn PriorityFn) PriorityFn {
	return func(m Move) MovePriority {
		if hint.Equals(m) {
			return math.MaxInt32
		}
		return fn(m)
	}
}

// SortByPriority sorts moves descending by priority, preserving relative order of equal keys
// so worker behavior stays reproducible apart from the Lazy-SMP root permutation.
func SortByPriority(moves []Move, fn PriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// Package perft counts leaf nodes of the legal move tree to a fixed
// depth, the standard move-generator correctness/speed check (spec.md
// §8, properties S1-S2). Grounded on zurichess's perft/perft.go
// (a recursive leaf counter plus a depth/hash-keyed memo table), pared
// down to plain node counting since this package generates only legal
// moves already and therefore has no legality recheck to time.
package perft

import "github.com/corvid-chess/corvid/engine"

type hashEntry struct {
	hash  uint64
	depth int
	nodes uint64
	valid bool
}

// Table memoizes perft(position, depth) by Zobrist hash, the way
// zurichess's perft tool does to make deep counts tractable.
type Table struct {
	entries []hashEntry
}

// NewTable allocates a memo table with 1<<bits entries.
func NewTable(bits int) *Table {
	return &Table{entries: make([]hashEntry, 1<<uint(bits))}
}

// Count returns the number of leaf positions reachable from b in
// exactly depth plies of legal play.
func Count(b *engine.Board, depth int) uint64 {
	return count(b, depth, nil)
}

// CountMemo is Count backed by a reusable memo table, for repeated
// calls against different depths of the same position tree.
func CountMemo(b *engine.Board, depth int, t *Table) uint64 {
	return count(b, depth, t)
}

func count(b *engine.Board, depth int, t *Table) uint64 {
	if depth == 0 {
		return 1
	}

	var index uint64
	if t != nil && len(t.entries) > 0 {
		index = b.Hash() % uint64(len(t.entries))
		e := t.entries[index]
		if e.valid && e.hash == b.Hash() && e.depth == depth {
			return e.nodes
		}
	}

	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += count(b, depth-1, t)
		b.UndoMove()
	}

	if t != nil && len(t.entries) > 0 {
		t.entries[index] = hashEntry{hash: b.Hash(), depth: depth, nodes: nodes, valid: true}
	}
	return nodes
}

// Divide returns, for each legal move at the root, the perft count of
// the subtree after that move — the standard per-move breakdown used
// to isolate a move generator bug against a known-good engine.
func Divide(b *engine.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth == 0 {
		return out
	}
	for _, m := range b.GenerateLegalMoves() {
		b.MakeMove(m)
		out[m.UCI()] = count(b, depth-1, nil)
		b.UndoMove()
	}
	return out
}

// material.go holds the centipawn material table and the non-pawn
// material phase calculation the evaluator and SEE share. Grounded on
// zurichess's engine/material.go (same table shape, one value per
// PieceKind plus a phase blend), with fresh hand-picked constants in
// place of zurichess's tuned weights, which this project has no way to
// re-derive or verify.
package engine

// pieceValue is indexed by PieceKind; NoKind is never looked up. The
// King entry is read only by SEE and MVVLVA, where a king can be the
// capturing piece; its large value keeps it from ever being traded.
var pieceValue = [7]int32{
	NoKind: 0,
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

// phaseWeight mirrors the conventional Fruit/Stockfish phase formula:
// every non-pawn piece contributes its weight towards "middlegame-ness".
var phaseWeight = [7]int32{
	NoKind: 0,
	Pawn:   0,
	Knight: 1,
	Bishop: 1,
	Rook:   2,
	Queen:  4,
	King:   0,
}

// totalPhase = 4 knights + 4 bishops + 4 rooks + 2 queens at their
// phaseWeight above; kept as a literal since phaseWeight is a runtime
// array and cannot appear in a const expression.
const totalPhase = 4*1 + 4*1 + 4*2 + 2*4

// gamePhase returns a value in [0, 256]: 0 at full material (pure
// middlegame), 256 when only pawns and kings remain (pure endgame).
func gamePhase(b *Board) int32 {
	phase := int32(totalPhase)
	for c := White; c <= Black; c++ {
		for k := Knight; k <= Queen; k++ {
			phase -= int32(b.ByColorKind(c, k).Popcount()) * phaseWeight[k]
		}
	}
	if phase < 0 {
		phase = 0
	}
	return phase * 256 / totalPhase
}

// blend linearly interpolates a middlegame and endgame score by phase
// (0 = middlegame, 256 = endgame).
func blend(mg, eg, phase int32) int32 {
	return (mg*(256-phase) + eg*phase) / 256
}

// see.go implements static exchange evaluation and the cheaper MVV-LVA
// fallback used for move ordering. Grounded on the classic
// "swap-off" SEE algorithm also used by zurichess's engine/see.go
// (recompute attackers to the target square against a shrinking
// occupancy, least-valuable-attacker first), rewritten against this
// package's bitboard/magic primitives instead of zurichess's own.
package engine

// attackersTo returns every piece of either color attacking sq given
// occ (a hypothetical occupancy, used to simulate captures mid-swap).
func (b *Board) attackersTo(sq Square, occ Bitboard) Bitboard {
	var att Bitboard
	att |= pawnAttacksFrom(sq, Black) & b.ByColorKind(White, Pawn)
	att |= pawnAttacksFrom(sq, White) & b.ByColorKind(Black, Pawn)
	att |= knightAttacksFrom(sq) & (b.ByColorKind(White, Knight) | b.ByColorKind(Black, Knight))
	att |= kingAttacksFrom(sq) & (b.ByColorKind(White, King) | b.ByColorKind(Black, King))

	diag := bishopAttacks(sq, occ)
	att |= diag & (b.ByColorKind(White, Bishop) | b.ByColorKind(Black, Bishop) |
		b.ByColorKind(White, Queen) | b.ByColorKind(Black, Queen))

	orth := rookAttacks(sq, occ)
	att |= orth & (b.ByColorKind(White, Rook) | b.ByColorKind(Black, Rook) |
		b.ByColorKind(White, Queen) | b.ByColorKind(Black, Queen))

	return att & occ
}

func (b *Board) leastValuableAttacker(attackers Bitboard, side Color) (Square, PieceKind) {
	for k := Pawn; k <= King; k++ {
		if bb := attackers & b.ByColorKind(side, k); bb != 0 {
			return bb.LSB(), k
		}
	}
	return SquareNone, NoKind
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// SEE estimates the net material swing of playing m (a capture or
// promotion) via the least-valuable-attacker recursion described in
// spec.md §4.4, clamped by the standard alpha-style pruning that stops
// the swap-off as soon as neither side can improve on its best line.
func (b *Board) SEE(m Move) int32 {
	to, from := m.To(), m.From()
	occ := b.allBB

	var capturedKind PieceKind
	if m.IsEnPassant() {
		capturedKind = Pawn
	} else {
		capturedKind = b.pieceOn[to].Kind()
	}

	var gain [32]int32
	d := 0
	gain[0] = pieceValue[capturedKind]

	attackerKind := b.pieceOn[from].Kind()
	if m.IsPromotion() {
		gain[0] += pieceValue[m.PromotionKind()] - pieceValue[Pawn]
		attackerKind = m.PromotionKind()
	}

	occ = occ.Clear(from)
	if m.IsEnPassant() {
		occ = occ.Clear(RankFile(from.Rank(), to.File()))
	}

	side := b.sideToMove.Opposite()
	for {
		attackers := b.attackersTo(to, occ)
		sideAttackers := attackers & b.colorBB[side]
		if sideAttackers == 0 {
			break
		}
		d++
		gain[d] = pieceValue[attackerKind] - gain[d-1]
		if max32(-gain[d-1], gain[d]) < 0 {
			break
		}
		sq, kind := b.leastValuableAttacker(sideAttackers, side)
		occ = occ.Clear(sq)
		attackerKind = kind
		side = side.Opposite()
	}

	for d > 0 {
		gain[d-1] = -max32(-gain[d-1], gain[d])
		d--
	}
	return gain[0]
}

// MVVLVA scores a capture by victim value minus a fraction of the
// attacker's value, cheap to compute when SEE's extra work is not
// justified (quiescence ordering fallback per spec.md §4.4).
func (b *Board) MVVLVA(m Move) int32 {
	if !m.IsCapture() {
		return 0
	}
	var victim PieceKind
	if m.IsEnPassant() {
		victim = Pawn
	} else {
		victim = b.pieceOn[m.To()].Kind()
	}
	attacker := b.pieceOn[m.From()].Kind()
	return pieceValue[victim]*16 - pieceValue[attacker]
}

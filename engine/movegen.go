// movegen.go implements legal move generation by partitioning on the
// number of checkers attacking the side-to-move king (spec.md §4.3):
// double check restricts to king moves, single check restricts to
// king moves/capturing the checker/blocking a slider check, and the
// quiet case applies a per-piece pin mask. Grounded on zurichess's
// engine/position.go pseudo-legal generators (genKnightMoves,
// genBishopMoves, genPawn*), but those are extended here with the
// pin/check masks zurichess's own generator does not compute (it
// instead filters with a post-hoc "does this leave my king in check"
// test); the mask-based approach here is the one described in
// raklaptudirm-mess's pkg/board/moveGenState.go (CalculateCheckmask /
// CalculatePinmask), adapted to this package's bitboard primitives.
package engine

var (
	lineThroughBB [64][64]Bitboard // full line through both squares, if aligned
	betweenBB     [64][64]Bitboard // squares strictly between, if aligned
)

func init() {
	for a := Square(0); a < 64; a++ {
		for b := Square(0); b < 64; b++ {
			if a == b {
				continue
			}
			// Orthogonal alignment.
			if a.Rank() == b.Rank() || a.File() == b.File() {
				computeLine(a, b, rookDeltas)
				continue
			}
			if a.Rank()-b.Rank() == a.File()-b.File() || a.Rank()-b.Rank() == b.File()-a.File() {
				computeLine(a, b, bishopDeltas)
			}
		}
	}
}

func computeLine(a, b Square, deltas [4][2]int) {
	ar, af := a.Rank(), a.File()
	for _, d := range deltas {
		r, f := ar, af
		var between Bitboard
		for {
			r, f = r+d[0], f+d[1]
			if !onBoard(r, f) {
				between = 0
				break
			}
			sq := RankFile(r, f)
			if sq == b {
				betweenBB[a][b] = between
				full := between | a.Bitboard() | b.Bitboard()
				// extend the line outward past both endpoints
				full |= slidingAttack(a, oneDelta(d), BbEmpty) | slidingAttack(b, oneDelta([2]int{-d[0], -d[1]}), BbEmpty)
				lineThroughBB[a][b] = full
				return
			}
			between = between.Set(sq)
		}
	}
}

func oneDelta(d [2]int) [4][2]int {
	return [4][2]int{d, d, d, d}
}

// checkersAndMask returns the pieces giving check, their count, and a
// mask: BbAll if the side to move is not in check, the
// bitboard of squares a non-king move must land on to resolve a single
// check (the checker's square, plus any blocking squares for a slider
// check), or BbEmpty for double check (only king moves are legal).
func (b *Board) checkersAndMask() (checkers Bitboard, numCheckers int, mask Bitboard) {
	us := b.sideToMove
	them := us.Opposite()
	kingSq := b.KingSquare(us)
	occ := b.allBB

	if bb := pawnAttacksFrom(kingSq, us) & b.ByColorKind(them, Pawn); bb != 0 {
		checkers |= bb
	}
	if bb := knightAttacksFrom(kingSq) & b.ByColorKind(them, Knight); bb != 0 {
		checkers |= bb
	}
	diagAtt := bishopAttacks(kingSq, occ)
	if bb := diagAtt & (b.ByColorKind(them, Bishop) | b.ByColorKind(them, Queen)); bb != 0 {
		checkers |= bb
	}
	orthAtt := rookAttacks(kingSq, occ)
	if bb := orthAtt & (b.ByColorKind(them, Rook) | b.ByColorKind(them, Queen)); bb != 0 {
		checkers |= bb
	}

	numCheckers = checkers.Popcount()
	switch numCheckers {
	case 0:
		return checkers, 0, BbAll
	case 1:
		checkerSq := checkers.LSB()
		return checkers, 1, checkers | betweenBB[kingSq][checkerSq]
	default:
		return checkers, 2, BbEmpty
	}
}

// pinMasks returns, for each square, the set of squares a piece
// standing there may move to: BbAll if it is not pinned, or the pin
// ray (including the pinning piece's square) if it is.
func (b *Board) pinMasks() [64]Bitboard {
	var masks [64]Bitboard
	for i := range masks {
		masks[i] = BbAll
	}

	us := b.sideToMove
	them := us.Opposite()
	kingSq := b.KingSquare(us)
	occ := b.allBB
	ownOcc := b.colorBB[us]

	diagPinners := b.ByColorKind(them, Bishop) | b.ByColorKind(them, Queen)
	orthPinners := b.ByColorKind(them, Rook) | b.ByColorKind(them, Queen)

	for blockers, diagonal := bishopAttacks(kingSq, occ) & ownOcc, true; blockers != 0; {
		sq := blockers.Pop()
		xray := xRayThroughFirstBlocker(kingSq, sq.Bitboard(), occ, diagonal)
		if xray&diagPinners != 0 {
			pinnerSq := (xray & diagPinners).LSB()
			masks[sq] = betweenBB[kingSq][pinnerSq] | pinnerSq.Bitboard()
		}
	}
	for blockers, diagonal := rookAttacks(kingSq, occ)&ownOcc, false; blockers != 0; {
		sq := blockers.Pop()
		xray := xRayThroughFirstBlocker(kingSq, sq.Bitboard(), occ, diagonal)
		if xray&orthPinners != 0 {
			pinnerSq := (xray & orthPinners).LSB()
			masks[sq] = betweenBB[kingSq][pinnerSq] | pinnerSq.Bitboard()
		}
	}
	return masks
}

// GenerateLegalMoves returns every legal move in the current position.
func (b *Board) GenerateLegalMoves() []Move {
	return b.generate(false)
}

// GenerateLegalCaptures returns legal captures and promotions only,
// used by quiescence search.
func (b *Board) GenerateLegalCaptures() []Move {
	return b.generate(true)
}

func (b *Board) generate(capturesOnly bool) []Move {
	moves := make([]Move, 0, 48)

	us := b.sideToMove
	them := us.Opposite()
	kingSq := b.KingSquare(us)
	occ := b.allBB
	_, numCheckers, checkMask := b.checkersAndMask()

	b.genKingMoves(us, them, kingSq, occ, numCheckers == 0 && !capturesOnly, capturesOnly, &moves)
	if numCheckers == 2 {
		return moves
	}

	pins := b.pinMasks()
	allowed := checkMask

	b.genPawnMoves(us, them, allowed, pins, capturesOnly, &moves)
	b.genLeaperMoves(Knight, us, allowed, pins, capturesOnly, &moves)
	b.genSliderMoves(Bishop, us, occ, allowed, pins, capturesOnly, &moves)
	b.genSliderMoves(Rook, us, occ, allowed, pins, capturesOnly, &moves)
	b.genSliderMoves(Queen, us, occ, allowed, pins, capturesOnly, &moves)

	return moves
}

func (b *Board) targetMask(capturesOnly bool) Bitboard {
	if capturesOnly {
		return b.colorBB[b.sideToMove.Opposite()]
	}
	return ^b.colorBB[b.sideToMove]
}

func (b *Board) genLeaperMoves(k PieceKind, us Color, allowed Bitboard, pins [64]Bitboard, capturesOnly bool, moves *[]Move) {
	them := us.Opposite()
	mask := b.targetMask(capturesOnly) & allowed
	for bb := b.ByColorKind(us, k); bb != 0; {
		from := bb.Pop()
		att := knightAttacksFrom(from) & mask & pins[from]
		for att != 0 {
			to := att.Pop()
			*moves = append(*moves, makeNormalMove(b, from, to, them))
		}
	}
}

func (b *Board) genSliderMoves(k PieceKind, us Color, occ, allowed Bitboard, pins [64]Bitboard, capturesOnly bool, moves *[]Move) {
	them := us.Opposite()
	mask := b.targetMask(capturesOnly) & allowed
	for bb := b.ByColorKind(us, k); bb != 0; {
		from := bb.Pop()
		var att Bitboard
		switch k {
		case Bishop:
			att = bishopAttacks(from, occ)
		case Rook:
			att = rookAttacks(from, occ)
		case Queen:
			att = queenAttacks(from, occ)
		}
		att &= mask & pins[from]
		for att != 0 {
			to := att.Pop()
			*moves = append(*moves, makeNormalMove(b, from, to, them))
		}
	}
}

func makeNormalMove(b *Board, from, to Square, them Color) Move {
	if b.colorBB[them].Has(to) {
		return NewMove(from, to, FlagCapture)
	}
	return NewMove(from, to, FlagQuiet)
}

func (b *Board) genKingMoves(us, them Color, kingSq Square, occ Bitboard, allowCastle, capturesOnly bool, moves *[]Move) {
	occWithoutKing := occ.Clear(kingSq)
	mask := b.targetMask(capturesOnly) & kingAttacksFrom(kingSq)
	for bb := mask; bb != 0; {
		to := bb.Pop()
		if b.SquareAttackedBy(to, them, occWithoutKing) {
			continue
		}
		*moves = append(*moves, makeNormalMove(b, kingSq, to, them))
	}

	if !allowCastle {
		return
	}
	rank := 0
	oo, ooo := WhiteOO, WhiteOOO
	if us == Black {
		rank = 7
		oo, ooo = BlackOO, BlackOOO
	}

	if b.castling&oo != 0 {
		f, g := RankFile(rank, 5), RankFile(rank, 6)
		if b.pieceOn[f] == Empty && b.pieceOn[g] == Empty &&
			!b.SquareAttackedBy(kingSq, them, occ) &&
			!b.SquareAttackedBy(f, them, occ) &&
			!b.SquareAttackedBy(g, them, occ) {
			*moves = append(*moves, NewMove(kingSq, g, FlagCastleKing))
		}
	}
	if b.castling&ooo != 0 {
		d, c, bsq := RankFile(rank, 3), RankFile(rank, 2), RankFile(rank, 1)
		if b.pieceOn[d] == Empty && b.pieceOn[c] == Empty && b.pieceOn[bsq] == Empty &&
			!b.SquareAttackedBy(kingSq, them, occ) &&
			!b.SquareAttackedBy(d, them, occ) &&
			!b.SquareAttackedBy(c, them, occ) {
			*moves = append(*moves, NewMove(kingSq, c, FlagCastleQueen))
		}
	}
}

func (b *Board) genPawnMoves(us, them Color, allowed Bitboard, pins [64]Bitboard, capturesOnly bool, moves *[]Move) {
	pawns := b.ByColorKind(us, Pawn)
	occ := b.allBB

	forward := 8
	promoRank := 7
	startRank := 1
	if us == Black {
		forward = -8
		promoRank = 0
		startRank = 6
	}

	for bb := pawns; bb != 0; {
		from := bb.Pop()
		pin := pins[from]
		to := Square(int(from) + forward)

		// Single and double push (only valid when not blocked). A push
		// promotion counts as a promotion, not a quiet move, so it is
		// generated even when capturesOnly is set (spec.md §4.2/§4.3:
		// GenerateLegalCaptures returns captures and promotions only).
		if !occ.Has(to) {
			if to.Rank() == promoRank {
				if allowed.Has(to) && pin.Has(to) {
					addPromotions(from, to, false, moves)
				}
			} else if !capturesOnly {
				if allowed.Has(to) && pin.Has(to) {
					*moves = append(*moves, NewMove(from, to, FlagQuiet))
				}
				if from.Rank() == startRank {
					to2 := Square(int(to) + forward)
					if !occ.Has(to2) && allowed.Has(to2) && pin.Has(to2) {
						*moves = append(*moves, NewMove(from, to2, FlagDoublePawn))
					}
				}
			}
		}

		// Captures (including promotions) and en passant.
		for _, capTo := range pawnCaptureSquares(from, us) {
			if capTo == SquareNone {
				continue
			}
			isEP := capTo == b.enPassant
			var capturedHere bool
			if isEP {
				capturedHere = true
			} else {
				capturedHere = b.colorBB[them].Has(capTo)
			}
			if !capturedHere {
				continue
			}
			if !pin.Has(capTo) {
				continue
			}
			if isEP {
				// The captured pawn, not the destination square, is
				// what a check evasion needs to land on here: en
				// passant removes a checking pawn even though the
				// mover ends up one square off of it.
				capturedSq := RankFile(from.Rank(), capTo.File())
				if !allowed.Has(capturedSq) {
					continue
				}
				if b.enPassantLegal(from, capTo, us) {
					*moves = append(*moves, NewMove(from, capTo, FlagEnPassant))
				}
				continue
			}
			if !allowed.Has(capTo) {
				continue
			}
			if capTo.Rank() == promoRank {
				addPromotions(from, capTo, true, moves)
			} else {
				*moves = append(*moves, NewMove(from, capTo, FlagCapture))
			}
		}
	}
}

func pawnCaptureSquares(from Square, us Color) [2]Square {
	f := from.File()
	delta := 8
	if us == Black {
		delta = -8
	}
	var out [2]Square
	out[0], out[1] = SquareNone, SquareNone
	if f > 0 {
		out[0] = Square(int(from) + delta - 1)
	}
	if f < 7 {
		out[1] = Square(int(from) + delta + 1)
	}
	return out
}

func addPromotions(from, to Square, capture bool, moves *[]Move) {
	kinds := [4]PieceKind{Queen, Rook, Bishop, Knight}
	for _, k := range kinds {
		*moves = append(*moves, NewMove(from, to, promotionFlag(k, capture)))
	}
}

// enPassantLegal implements the §4.3 en-passant edge case directly: en
// passant is the only move where two pieces leave the same rank in one
// ply, so it is always re-verified against the resulting occupancy
// instead of only when the king shares that rank (simpler to get right
// than conditioning on rank, and just as cheap since en passant moves
// are rare).
func (b *Board) enPassantLegal(from, to Square, us Color) bool {
	them := us.Opposite()
	capturedSq := RankFile(from.Rank(), to.File())
	occ := b.allBB
	occ = occ.Clear(from).Clear(capturedSq).Set(to)
	kingSq := b.KingSquare(us)
	return !b.SquareAttackedBy(kingSq, them, occ)
}

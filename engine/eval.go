// eval.go implements the Evaluator interface and its one concrete
// implementation, a handcrafted evaluator in the classic
// material+PSQT+structure style. Grounded on zurichess's
// engine/{material,pawns,score}.go split (phase-blended piece-square
// tables, pawn-structure terms, a running per-side score accumulator)
// but built from hand-designed constants instead of zurichess's
// externally-tuned 187-weight vector, which this project has no way to
// reproduce or verify without running a tuner. The piece-square values
// below follow the well-known "simplified evaluation function" public
// domain style numbers rather than any proprietary tuned set.
package engine

// Evaluator is the static position scorer the search consults. A
// concrete implementation is bound to one Board for its lifetime.
type Evaluator interface {
	Evaluate() int32
	IsDraw() bool
	UpdateBeforeMove(m Move)
	UpdateAfterMove()
	UpdateBeforeUndo()
	UpdateAfterUndo(m Move)
	ScoreMoveSEE(m Move) int32
	ScoreMoveMVVLVA(m Move) int32
}

// EvalConfig holds the handcrafted evaluator's tunable weights. Zero
// value is meaningless; use DefaultEvalConfig or LoadEvalConfig.
type EvalConfig struct {
	PieceValue       [7]int32
	BishopPairBonus  int32
	KnightPawnBonus  int32 // per own pawn, knights get stronger
	RookPawnPenalty  int32 // per own pawn, rooks get weaker
	MobilityWeight   [7]int32
	KingSafetyWeight int32
	RookOpenFile     int32
	RookSemiOpenFile int32
	PassedPawnBonus  [8]int32 // indexed by relative rank
	DoubledPawnPenalty   int32
	IsolatedPawnPenalty  int32
	BackwardPawnPenalty  int32
	ConnectedPawnBonus   int32
}

// DefaultEvalConfig returns the built-in weights used when no TOML
// override is loaded.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		PieceValue:          pieceValue,
		BishopPairBonus:     30,
		KnightPawnBonus:     2,
		RookPawnPenalty:     2,
		MobilityWeight:      [7]int32{Knight: 4, Bishop: 4, Rook: 2, Queen: 1},
		KingSafetyWeight:    20,
		RookOpenFile:        20,
		RookSemiOpenFile:    10,
		PassedPawnBonus:     [8]int32{0, 5, 10, 20, 35, 60, 100, 0},
		DoubledPawnPenalty:  10,
		IsolatedPawnPenalty: 12,
		BackwardPawnPenalty: 8,
		ConnectedPawnBonus:  4,
	}
}

// HandcraftedEvaluator is the one concrete Evaluator this module
// describes in full. It fully recomputes evaluate() on every call, as
// spec.md §4.4 explicitly permits, so its incremental hooks are no-ops.
type HandcraftedEvaluator struct {
	board *Board
	cfg   EvalConfig
}

// NewHandcraftedEvaluator binds a board to a new evaluator instance.
func NewHandcraftedEvaluator(b *Board, cfg EvalConfig) *HandcraftedEvaluator {
	return &HandcraftedEvaluator{board: b, cfg: cfg}
}

func (e *HandcraftedEvaluator) UpdateBeforeMove(Move) {}
func (e *HandcraftedEvaluator) UpdateAfterMove()       {}
func (e *HandcraftedEvaluator) UpdateBeforeUndo()      {}
func (e *HandcraftedEvaluator) UpdateAfterUndo(Move)   {}

func (e *HandcraftedEvaluator) ScoreMoveSEE(m Move) int32    { return e.board.SEE(m) }
func (e *HandcraftedEvaluator) ScoreMoveMVVLVA(m Move) int32 { return e.board.MVVLVA(m) }

// IsDraw reports insufficient material, the fifty-move rule, or
// threefold repetition, per spec.md §4.4.
func (e *HandcraftedEvaluator) IsDraw() bool {
	b := e.board
	if b.halfmoveClock >= 100 {
		return true
	}
	if b.RepetitionCount() >= 3 {
		return true
	}
	return InsufficientMaterial(b)
}

// Evaluate returns a centipawn score from sideToMove's perspective.
func (e *HandcraftedEvaluator) Evaluate() int32 {
	b := e.board
	phase := gamePhase(b)

	score := e.scoreSide(White, phase) - e.scoreSide(Black, phase)
	score += e.endgameRescoring(phase)

	if b.sideToMove == Black {
		score = -score
	}
	return score
}

func (e *HandcraftedEvaluator) scoreSide(c Color, phase int32) int32 {
	b := e.board
	var mg, eg int32

	pawns := b.ByColorKind(c, Pawn).Popcount()
	knights := b.ByColorKind(c, Knight).Popcount()
	bishops := b.ByColorKind(c, Bishop).Popcount()

	for k := Pawn; k <= King; k++ {
		count := int32(b.ByColorKind(c, k).Popcount())
		mg += count * e.cfg.PieceValue[k]
		eg += count * e.cfg.PieceValue[k]

		for bb := b.ByColorKind(c, k); bb != 0; {
			sq := bb.Pop()
			psqSq := sq
			if c == Black {
				psqSq = FlipY(sq)
			}
			mg += psqtMg[k][psqSq]
			eg += psqtEg[k][psqSq]
		}
	}

	if bishops >= 2 {
		mg += e.cfg.BishopPairBonus
		eg += e.cfg.BishopPairBonus
	}
	knightBonus := int32(knights) * int32(pawns) * e.cfg.KnightPawnBonus
	rookPenalty := int32(b.ByColorKind(c, Rook).Popcount()) * int32(pawns) * e.cfg.RookPawnPenalty
	mg += knightBonus - rookPenalty
	eg += knightBonus - rookPenalty

	mg += e.mobility(c)
	eg += e.mobility(c) / 2
	mg += e.kingSafety(c)
	mg += e.rookFiles(c)
	eg += e.rookFiles(c) / 2

	pawnMg, pawnEg := e.pawnStructure(c)
	mg += pawnMg
	eg += pawnEg

	return blend(mg, eg, phase)
}

func (e *HandcraftedEvaluator) mobility(c Color) int32 {
	b := e.board
	occ := b.allBB
	enemyPawnAttacks := b.attackByPiece[NewPiece(c.Opposite(), Pawn)]
	var score int32

	for k := Knight; k <= Queen; k++ {
		for bb := b.ByColorKind(c, k); bb != 0; {
			sq := bb.Pop()
			att := attacksFrom(k, sq, c, occ) &^ b.colorBB[c] &^ enemyPawnAttacks
			score += int32(att.Popcount()) * e.cfg.MobilityWeight[k]
		}
	}
	return score
}

func (e *HandcraftedEvaluator) kingSafety(c Color) int32 {
	b := e.board
	kingSq := b.KingSquare(c)
	shieldRank := kingSq.Rank() + 1
	if c == Black {
		shieldRank = kingSq.Rank() - 1
	}
	if shieldRank < 0 || shieldRank > 7 {
		return 0
	}
	shield := RankBb(shieldRank) & (FileBb(kingSq.File()) | AdjacentFiles(kingSq.File()))
	missing := 3 - (shield & b.ByColorKind(c, Pawn)).Popcount()
	if missing < 0 {
		missing = 0
	}
	return -int32(missing) * e.cfg.KingSafetyWeight
}

func (e *HandcraftedEvaluator) rookFiles(c Color) int32 {
	b := e.board
	var score int32
	ownPawns := b.ByColorKind(c, Pawn)
	enemyPawns := b.ByColorKind(c.Opposite(), Pawn)
	for bb := b.ByColorKind(c, Rook); bb != 0; {
		sq := bb.Pop()
		file := FileBb(sq.File())
		switch {
		case file&ownPawns == 0 && file&enemyPawns == 0:
			score += e.cfg.RookOpenFile
		case file&ownPawns == 0:
			score += e.cfg.RookSemiOpenFile
		}
	}
	return score
}

// pawnStructure scores doubled, isolated, backward, connected, and
// passed pawns. Pawn islands and pawn storms against the enemy king are
// not scored; the pawn shield in front of a side's own king is scored
// separately, in kingSafety.
func (e *HandcraftedEvaluator) pawnStructure(c Color) (mg, eg int32) {
	b := e.board
	own := b.ByColorKind(c, Pawn)
	enemy := b.ByColorKind(c.Opposite(), Pawn)

	for f := 0; f < 8; f++ {
		file := FileBb(f)
		onFile := own & file
		count := onFile.Popcount()
		if count > 1 {
			mg -= e.cfg.DoubledPawnPenalty * int32(count-1)
			eg -= e.cfg.DoubledPawnPenalty * int32(count-1)
		}
		if count > 0 && own&AdjacentFiles(f) == 0 {
			mg -= e.cfg.IsolatedPawnPenalty
			eg -= e.cfg.IsolatedPawnPenalty
		}
	}

	for bb := own; bb != 0; {
		sq := bb.Pop()
		rr := sq.RelativeRank(c)

		ahead := FileExtrude(FileBb(sq.File())|AdjacentFiles(sq.File())) & enemy
		aheadMask := relativeRankMask(c, rr)
		if ahead&aheadMask == 0 {
			bonus := e.cfg.PassedPawnBonus[rr]
			mg += bonus
			eg += bonus * 2
		}

		if own&AdjacentFiles(sq.File())&RankBb(sq.Rank()) != 0 {
			mg += e.cfg.ConnectedPawnBonus
			eg += e.cfg.ConnectedPawnBonus
		} else if isBackward(own, enemy, sq, c) {
			mg -= e.cfg.BackwardPawnPenalty
			eg -= e.cfg.BackwardPawnPenalty
		}
	}
	return mg, eg
}

// relativeRankMask returns the ranks strictly ahead of relative rank rr.
func relativeRankMask(c Color, rr int) Bitboard {
	var mask Bitboard
	for r := rr + 1; r < 8; r++ {
		actual := r
		if c == Black {
			actual = 7 - r
		}
		mask |= RankBb(actual)
	}
	return mask
}

func isBackward(own, enemy Bitboard, sq Square, c Color) bool {
	behindAdjacent := AdjacentFiles(sq.File())
	if c == White {
		for r := 0; r < sq.Rank(); r++ {
			if own&behindAdjacent&RankBb(r) != 0 {
				return false
			}
		}
	} else {
		for r := 7; r > sq.Rank(); r-- {
			if own&behindAdjacent&RankBb(r) != 0 {
				return false
			}
		}
	}
	stop := int(sq) + 8
	if c == Black {
		stop = int(sq) - 8
	}
	if stop < 0 || stop > 63 {
		return false
	}
	return pawnAttacksFrom(Square(stop), c)&enemy != 0
}

// endgameRescoring applies the two classic mate-drive corrections:
// KNB-vs-K drives the lone king to the bishop's corner, and any
// KX-vs-K where one side has no material left drives that king to the
// edge in general. Returns a White-minus-Black adjustment.
func (e *HandcraftedEvaluator) endgameRescoring(phase int32) int32 {
	if phase < 200 {
		return 0
	}
	b := e.board
	whiteMaterial := nonKingMaterial(b, White)
	blackMaterial := nonKingMaterial(b, Black)

	switch {
	case whiteMaterial > 0 && blackMaterial == 0:
		return driveToEdge(b, Black, whiteHasBishopPairCorner(b))
	case blackMaterial > 0 && whiteMaterial == 0:
		return -driveToEdge(b, White, whiteHasBishopPairCorner(b))
	default:
		return 0
	}
}

func nonKingMaterial(b *Board, c Color) int32 {
	var m int32
	for k := Pawn; k < King; k++ {
		m += int32(b.ByColorKind(c, k).Popcount()) * pieceValue[k]
	}
	return m
}

// whiteHasBishopPairCorner reports whether the lowest-indexed bishop on
// the board stands on a light square (true when there is no bishop), to
// bias the corner-drive term for KNBK. driveToEdge adds that corner
// term in every KX-vs-K ending, so without a bishop the drive leans
// towards the light corners a8 and h1.
func whiteHasBishopPairCorner(b *Board) bool {
	bishops := b.ByColorKind(White, Bishop) | b.ByColorKind(Black, Bishop)
	if bishops == 0 {
		return true
	}
	return squareColor(bishops.LSB()) == 1
}

// driveToEdge scores how close the losing king (color losing) is to
// the board edge/corner, higher is better for the mating side.
func driveToEdge(b *Board, losing Color, lightCorner bool) int32 {
	sq := b.KingSquare(losing)
	r, f := sq.Rank(), sq.File()
	centerDist := centerDistance(r, f)
	score := centerDist * 10

	if lightCorner {
		score += int32(7-abs(r+f-7)) * 5
	} else {
		score += int32(7-abs(r-f)) * 5
	}
	return score
}

func centerDistance(r, f int) int32 {
	dr, df := r-4, f-4
	if dr < 0 {
		dr = -dr - 1
	}
	if df < 0 {
		df = -df - 1
	}
	return int32(dr + df)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

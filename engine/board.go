// board.go implements the stateful chess position: piece placement,
// incremental zobrist hash, castling/en-passant/halfmove bookkeeping,
// and the make/undo stack. Grounded on zurichess's engine/position.go
// (Put/Remove toggling zobrist keys, a pushState/popState ply stack)
// but reshaped around the spec's explicit undo-record contract in
// place of zurichess's copy-on-write state slice, and around the
// spec's packed Move instead of zurichess's fat move struct.
package engine

import "fmt"

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// undoRecord captures everything needed to invert one MakeMove. It is
// plain data with no reference back to the Board, so undo is O(1) and
// there is no lifetime entanglement between Board and its history (see
// spec.md design note on pointer-rich history graphs).
type undoRecord struct {
	move          Move
	captured      PieceKind
	castling      Castle
	enPassant     Square
	halfmoveClock int
	hash          uint64
	attackByPiece [16]Bitboard
	attackBySide  [3]Bitboard

	irreversiblePly int
}

// Board is the full chess position plus its undo history.
type Board struct {
	pieceOn [64]Piece
	pieceBB [16]Bitboard // indexed by Piece
	colorBB [3]Bitboard  // indexed by Color (0 unused)
	allBB   Bitboard

	attackByPiece [16]Bitboard
	attackBySide  [3]Bitboard

	sideToMove      Color
	enPassant       Square // SquareNone if not set
	castling        Castle
	halfmoveClock   int
	fullmoveNumber  int
	ply             int
	hash            uint64
	irreversiblePly int

	hashHistory []uint64 // hashHistory[ply] = hash seen at that ply
	undoStack   []undoRecord
}

// lostCastleRights[sq] is the set of castling rights forfeited the
// moment a king or rook moves off (or a rook is captured on) sq.
var lostCastleRights [64]Castle

func init() {
	lostCastleRights[SquareE1] = WhiteOO | WhiteOOO
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareE8] = BlackOO | BlackOOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareH8] = BlackOO
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b, err := FromFEN(StartFEN)
	if err != nil {
		panic("corrupt built-in start FEN: " + err.Error())
	}
	return b
}

// PieceAt returns the piece on sq, or Empty.
func (b *Board) PieceAt(sq Square) Piece { return b.pieceOn[sq] }

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color { return b.sideToMove }

// EnPassantTarget returns the current en-passant target square, or
// SquareNone.
func (b *Board) EnPassantTarget() Square { return b.enPassant }

// CastlingRights returns the current castling-rights set.
func (b *Board) CastlingRights() Castle { return b.castling }

// HalfmoveClock returns plies since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (starts at 1).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Ply returns plies since the position was constructed.
func (b *Board) Ply() int { return b.ply }

// Hash returns the zobrist hash of the current position.
func (b *Board) Hash() uint64 { return b.hash }

// Occupancy returns all occupied squares.
func (b *Board) Occupancy() Bitboard { return b.allBB }

// ColorOccupancy returns the squares occupied by c.
func (b *Board) ColorOccupancy(c Color) Bitboard { return b.colorBB[c] }

// PieceBB returns the bitboard of piece p.
func (b *Board) PieceBB(p Piece) Bitboard { return b.pieceBB[p] }

// ByColorKind is a shortcut for the bitboard of (c, k).
func (b *Board) ByColorKind(c Color, k PieceKind) Bitboard { return b.pieceBB[NewPiece(c, k)] }

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) Square {
	return b.pieceBB[NewPiece(c, King)].LSB()
}

// AttackedBySide returns the squares attacked by every piece of c,
// from the last full refresh (after the most recent make/undo).
func (b *Board) AttackedBySide(c Color) Bitboard { return b.attackBySide[c] }

// AttackedByPiece returns the squares attacked by piece p.
func (b *Board) AttackedByPiece(p Piece) Bitboard { return b.attackByPiece[p] }

func (b *Board) put(sq Square, p Piece) {
	if p == Empty {
		return
	}
	b.pieceOn[sq] = p
	bb := sq.Bitboard()
	b.pieceBB[p] |= bb
	b.colorBB[p.Color()] |= bb
	b.allBB |= bb
	b.hash ^= pieceZobrist(p, sq)
}

func (b *Board) remove(sq Square, p Piece) {
	if p == Empty {
		return
	}
	b.pieceOn[sq] = Empty
	bb := ^sq.Bitboard()
	b.pieceBB[p] &= bb
	b.colorBB[p.Color()] &= bb
	b.allBB &= bb
	b.hash ^= pieceZobrist(p, sq)
}

func (b *Board) setCastling(c Castle) {
	if c == b.castling {
		return
	}
	b.hash ^= castleZobrist(b.castling)
	b.castling = c
	b.hash ^= castleZobrist(b.castling)
}

func (b *Board) setEnPassant(sq Square) {
	if sq == b.enPassant {
		return
	}
	b.hash ^= enPassantZobrist(b.enPassant)
	b.enPassant = sq
	b.hash ^= enPassantZobrist(b.enPassant)
}

// captureSquare returns the square of the piece m captures, which for
// en passant is not m.To().
func (b *Board) captureSquare(m Move) Square {
	if m.IsEnPassant() {
		return RankFile(m.From().Rank(), m.To().File())
	}
	return m.To()
}

// MakeMove applies m, assuming it is pseudo-legal (produced by the
// generator or otherwise validated by IsMoveLegal). It is the exact
// inverse of UndoMove.
func (b *Board) MakeMove(m Move) {
	mover := b.pieceOn[m.From()]

	var captured PieceKind
	if m.IsCapture() {
		captured = b.pieceOn[b.captureSquare(m)].Kind()
	}

	b.undoStack = append(b.undoStack, undoRecord{
		move:          m,
		captured:      captured,
		castling:      b.castling,
		enPassant:     b.enPassant,
		halfmoveClock: b.halfmoveClock,
		hash:          b.hash,
		attackByPiece: b.attackByPiece,
		attackBySide:  b.attackBySide,

		irreversiblePly: b.irreversiblePly,
	})

	us := b.sideToMove
	them := us.Opposite()

	if m.IsCapture() {
		b.remove(b.captureSquare(m), NewPiece(them, captured))
	}
	b.remove(m.From(), mover)

	target := mover
	if m.IsPromotion() {
		target = NewPiece(us, m.PromotionKind())
	}
	b.put(m.To(), target)

	if m.IsCastle() {
		rook, from, to := castlingRook(m.To())
		b.remove(from, rook)
		b.put(to, rook)
	}

	b.setCastling(b.castling &^ lostCastleRights[m.From()] &^ lostCastleRights[m.To()])

	if mover.Kind() == Pawn && m.IsDoublePawn() {
		b.setEnPassant(RankFile((m.From().Rank()+m.To().Rank())/2, m.From().File()))
	} else {
		b.setEnPassant(SquareNone)
	}

	if m.IsCapture() || mover.Kind() == Pawn {
		b.halfmoveClock = 0
		b.irreversiblePly = b.ply + 1
	} else {
		b.halfmoveClock++
	}

	if us == Black {
		b.fullmoveNumber++
	}
	b.ply++
	b.sideToMove = them
	b.hash ^= zobristSide

	b.refreshAttacks()
	b.hashHistory = append(b.hashHistory, b.hash)
}

// UndoMove pops the most recent undo record and restores every field
// to its value before the matching MakeMove.
func (b *Board) UndoMove() {
	n := len(b.undoStack)
	rec := b.undoStack[n-1]
	b.undoStack = b.undoStack[:n-1]
	b.hashHistory = b.hashHistory[:len(b.hashHistory)-1]

	m := rec.move
	them := b.sideToMove
	us := them.Opposite()

	if us == Black {
		b.fullmoveNumber--
	}
	b.ply--
	b.sideToMove = us

	mover := b.pieceOn[m.To()]
	if m.IsPromotion() {
		mover = NewPiece(us, Pawn)
	}

	if m.IsCastle() {
		rook, from, to := castlingRook(m.To())
		b.remove(to, rook)
		b.put(from, rook)
	}

	b.remove(m.To(), b.pieceOn[m.To()])
	b.put(m.From(), mover)
	if m.IsCapture() {
		b.put(b.captureSquare(m), NewPiece(them, rec.captured))
	}

	b.castling = rec.castling
	b.enPassant = rec.enPassant
	b.halfmoveClock = rec.halfmoveClock
	b.hash = rec.hash
	b.attackByPiece = rec.attackByPiece
	b.attackBySide = rec.attackBySide
	b.irreversiblePly = rec.irreversiblePly
}

// MakeNullMove swaps the side to move without touching the pieces. It
// is a search-only tool (§4.7.3); the result is never a legal chess
// position and must only be undone with UndoNullMove.
func (b *Board) MakeNullMove() {
	b.undoStack = append(b.undoStack, undoRecord{
		move:      NullMove,
		enPassant: b.enPassant,
		hash:      b.hash,
	})
	b.setEnPassant(SquareNone)
	b.sideToMove = b.sideToMove.Opposite()
	b.hash ^= zobristSide
	b.ply++
	b.hashHistory = append(b.hashHistory, b.hash)
}

// UndoNullMove inverts MakeNullMove.
func (b *Board) UndoNullMove() {
	n := len(b.undoStack)
	rec := b.undoStack[n-1]
	b.undoStack = b.undoStack[:n-1]
	b.hashHistory = b.hashHistory[:len(b.hashHistory)-1]

	b.ply--
	b.sideToMove = b.sideToMove.Opposite()
	b.enPassant = rec.enPassant
	b.hash = rec.hash
}

// refreshAttacks recomputes the per-piece and per-side attack
// bitboards from the current occupancy. The spec permits either a
// full rebuild or an incremental update after make/undo; this
// implementation always rebuilds fully, which keeps MakeMove/UndoMove
// simple and unconditionally correct.
func (b *Board) refreshAttacks() {
	for p := range b.attackByPiece {
		b.attackByPiece[p] = 0
	}
	b.attackBySide[White] = 0
	b.attackBySide[Black] = 0

	occ := b.allBB
	for c := White; c <= Black; c++ {
		for k := KindMin; k <= KindMax; k++ {
			p := NewPiece(c, k)
			var bb Bitboard
			for pieces := b.pieceBB[p]; pieces != 0; {
				sq := pieces.Pop()
				bb |= attacksFrom(k, sq, c, occ)
			}
			b.attackByPiece[p] = bb
			b.attackBySide[c] |= bb
		}
	}
}

// attacksFrom returns the attack set of a single piece of kind k and
// color c sitting on sq, given occupancy occ.
func attacksFrom(k PieceKind, sq Square, c Color, occ Bitboard) Bitboard {
	switch k {
	case Pawn:
		return pawnAttacksFrom(sq, c)
	case Knight:
		return knightAttacksFrom(sq)
	case Bishop:
		return bishopAttacks(sq, occ)
	case Rook:
		return rookAttacks(sq, occ)
	case Queen:
		return queenAttacks(sq, occ)
	case King:
		return kingAttacksFrom(sq)
	}
	return 0
}

// SquareAttackedBy reports whether any piece of color by attacks sq,
// given an explicit occupancy (so callers can probe king-move safety
// on a modified occupancy, e.g. with the king itself removed).
func (b *Board) SquareAttackedBy(sq Square, by Color, occupancy Bitboard) bool {
	if pawnAttacksFrom(sq, by.Opposite())&b.ByColorKind(by, Pawn) != 0 {
		return true
	}
	if knightAttacksFrom(sq)&b.ByColorKind(by, Knight) != 0 {
		return true
	}
	if kingAttacksFrom(sq)&b.ByColorKind(by, King) != 0 {
		return true
	}
	bishopsQueens := b.ByColorKind(by, Bishop) | b.ByColorKind(by, Queen)
	if bishopAttacks(sq, occupancy)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := b.ByColorKind(by, Rook) | b.ByColorKind(by, Queen)
	if rookAttacks(sq, occupancy)&rooksQueens != 0 {
		return true
	}
	return false
}

// IsCheck reports whether the side to move's king is attacked.
func (b *Board) IsCheck() bool {
	return b.SquareAttackedBy(b.KingSquare(b.sideToMove), b.sideToMove.Opposite(), b.allBB)
}

// RepetitionCount returns the number of prior occurrences of the
// current hash since the last irreversible move (inclusive of the
// current position, so a value of 3 means "seen three times total").
func (b *Board) RepetitionCount() int {
	count := 0
	for i := b.ply; i >= b.irreversiblePly && i >= 0; i -= 2 {
		if i < len(b.hashHistory) && b.hashHistory[i] == b.hash {
			count++
		}
	}
	return count
}

// IsMoveLegal validates that m is legal in the current position by
// generating every legal move and looking m up among them. This is
// comparatively expensive; the legal generator never needs it.
func (b *Board) IsMoveLegal(m Move) bool {
	mover := b.pieceOn[m.From()]
	if mover == Empty || mover.Color() != b.sideToMove {
		return false
	}
	pseudo := false
	for _, cand := range b.GenerateLegalMoves() {
		if cand == m {
			pseudo = true
			break
		}
	}
	return pseudo
}

func (b *Board) String() string {
	return b.ToFEN()
}

var errBadFen = func(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFen, fmt.Sprintf(format, args...))
}

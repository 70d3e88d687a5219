// move.go implements the packed Move record (origin, destination,
// 4-bit flags) per the engine's wire contract. Grounded on zurichess's
// engine/basic.go Move type (UCI()/LAN() string conversions, the shape
// of a promotion/capture predicate set) but repacked into the
// bit-for-bit layout the spec fixes: 6 bits origin, 6 bits
// destination, 4 bits flags, so a Move fits in a uint16 and is cheap
// to copy through the move list and search stack.
package engine

// MoveFlag is the 4-bit move-shape tag.
type MoveFlag uint8

const (
	FlagQuiet          MoveFlag = 0
	FlagDoublePawn     MoveFlag = 1
	FlagCastleKing     MoveFlag = 2
	FlagCastleQueen    MoveFlag = 3
	FlagCapture        MoveFlag = 4
	FlagEnPassant      MoveFlag = 5
	// 6, 7 reserved.
	FlagPromoKnight    MoveFlag = 8
	FlagPromoBishop    MoveFlag = 9
	FlagPromoRook      MoveFlag = 10
	FlagPromoQueen     MoveFlag = 11
	FlagPromoKnightCap MoveFlag = 8 | 4
	FlagPromoBishopCap MoveFlag = 9 | 4
	FlagPromoRookCap   MoveFlag = 10 | 4
	FlagPromoQueenCap  MoveFlag = 11 | 4

	// flagNull marks the distinguished null move: origin=destination=0
	// with a flag value no real move ever carries.
	flagNull MoveFlag = 6
)

// Move is a packed origin/destination/flags record: bits 0-5 origin,
// bits 6-11 destination, bits 12-15 flags.
type Move uint16

// NullMove is the distinguished search-only pseudo-move. It is never
// produced by the generator and must never be confused with a legal
// move.
const NullMove Move = Move(flagNull) << 12

// NewMove packs a move.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

func (m Move) From() Square    { return Square(m & 0x3F) }
func (m Move) To() Square      { return Square(m >> 6 & 0x3F) }
func (m Move) Flag() MoveFlag  { return MoveFlag(m >> 12 & 0xF) }

// Exists reports whether m is a real (non-null) move.
func (m Move) Exists() bool { return m != NullMove }

func (m Move) IsQuiet() bool      { return m.Flag() == FlagQuiet }
func (m Move) IsDoublePawn() bool { return m.Flag() == FlagDoublePawn }
func (m Move) IsEnPassant() bool  { return m.Flag() == FlagEnPassant }
func (m Move) IsCastle() bool {
	return m.Flag() == FlagCastleKing || m.Flag() == FlagCastleQueen
}

// IsCapture reports whether m captures a piece (including en passant
// and capturing promotions).
func (m Move) IsCapture() bool { return m.Flag()&FlagCapture != 0 && m.Flag() != flagNull }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag() >= FlagPromoKnight }

// PromotionKind returns the kind promoted to, or NoKind if m is not a
// promotion.
func (m Move) PromotionKind() PieceKind {
	if !m.IsPromotion() {
		return NoKind
	}
	switch m.Flag() &^ FlagCapture {
	case FlagPromoKnight:
		return Knight
	case FlagPromoBishop:
		return Bishop
	case FlagPromoRook:
		return Rook
	default:
		return Queen
	}
}

func promotionFlag(k PieceKind, capture bool) MoveFlag {
	var f MoveFlag
	switch k {
	case Knight:
		f = FlagPromoKnight
	case Bishop:
		f = FlagPromoBishop
	case Rook:
		f = FlagPromoRook
	default:
		f = FlagPromoQueen
	}
	if capture {
		f |= FlagCapture
	}
	return f
}

// UCI converts m to engine-control-surface move-string format:
// origin-destination in lowercase algebraic, plus a lowercase
// promotion letter if applicable (e.g. "e2e4", "e7e8q").
func (m Move) UCI() string {
	if !m.Exists() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += m.PromotionKind().String()
	}
	return s
}

func (m Move) String() string { return m.UCI() }

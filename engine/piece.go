package engine

import "fmt"

// Square identifies one of the 64 board squares in little-endian
// rank-file order: square = rank*8 + file, file 0 = a, rank 0 = 1.
type Square uint8

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareNone Square = 64
)

// RankFile returns the square at rank r (0-based, 0 = rank 1) and file f
// (0-based, 0 = file a).
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square in algebraic notation ("e4").
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareNone, fmt.Errorf("%w: bad square %q", ErrInvalidMoveString, s)
	}
	f := s[0] - 'a'
	r := s[1] - '1'
	if f > 7 || r > 7 {
		return SquareNone, fmt.Errorf("%w: bad square %q", ErrInvalidMoveString, s)
	}
	return RankFile(int(r), int(f)), nil
}

// Rank returns 0..7, rank 0 being rank 1.
func (sq Square) Rank() int { return int(sq / 8) }

// File returns 0..7, file 0 being file a.
func (sq Square) File() int { return int(sq % 8) }

// Bitboard returns the singleton bitboard containing sq.
func (sq Square) Bitboard() Bitboard { return Bitboard(1) << uint(sq) }

// FlipY mirrors a square vertically (rank r <-> rank 7-r), used to
// reuse White-relative tables for Black.
func FlipY(sq Square) Square { return sq ^ 56 }

// RelativeRank returns sq's rank as seen by color c (rank 0 is always
// "home rank" for that color).
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return 7 - sq.Rank()
	}
	return sq.Rank()
}

func (sq Square) String() string {
	if sq > SquareH8 {
		return "-"
	}
	return string([]byte{byte(sq.File()) + 'a', byte(sq.Rank()) + '1'})
}

// Color is White or Black. The zero value is NoColor.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Opposite returns the other color. Undefined for NoColor.
func (c Color) Opposite() Color { return White + Black - c }

func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// PieceKind is a piece type without color. The zero value is NoKind.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	KindMin = Pawn
	KindMax = King
)

var pieceKindSymbol = [...]byte{NoKind: '.', Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

func (k PieceKind) String() string {
	if k > KindMax {
		return "?"
	}
	return string(pieceKindSymbol[k])
}

// Piece packs a Color and a PieceKind into one byte. Empty is the zero
// value and is distinct from any (Color, PieceKind) pair.
type Piece uint8

const Empty Piece = 0

// NewPiece builds a Piece from its color and kind. NewPiece(NoColor,
// NoKind) returns Empty.
func NewPiece(c Color, k PieceKind) Piece {
	if c == NoColor || k == NoKind {
		return Empty
	}
	return Piece(c-1)<<3 | Piece(k)
}

// Color returns the piece's color, or NoColor for Empty.
func (p Piece) Color() Color {
	if p == Empty {
		return NoColor
	}
	return Color(p>>3) + 1
}

// Kind returns the piece's kind, or NoKind for Empty.
func (p Piece) Kind() PieceKind { return PieceKind(p & 7) }

func (p Piece) String() string {
	if p == Empty {
		return "."
	}
	s := p.Kind().String()
	if p.Color() == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

// Castle is a 4-bit set of castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO
)

func (c Castle) String() string {
	if c == NoCastle {
		return "-"
	}
	var b []byte
	if c&WhiteOO != 0 {
		b = append(b, 'K')
	}
	if c&WhiteOOO != 0 {
		b = append(b, 'Q')
	}
	if c&BlackOO != 0 {
		b = append(b, 'k')
	}
	if c&BlackOOO != 0 {
		b = append(b, 'q')
	}
	return string(b)
}

// castlingRook returns the rook piece and its origin/destination when
// the king lands on kingEnd during castling.
func castlingRook(kingEnd Square) (Piece, Square, Square) {
	rank := kingEnd.Rank()
	color := White
	if rank == 7 {
		color = Black
	}
	if kingEnd.File() == 6 { // king side
		return NewPiece(color, Rook), RankFile(rank, 7), RankFile(rank, 5)
	}
	return NewPiece(color, Rook), RankFile(rank, 0), RankFile(rank, 3)
}

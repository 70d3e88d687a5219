// fen.go implements Forsyth-Edwards Notation import/export, the wire
// format the engine control surface uses for setPosition and for
// reporting the current position back to a caller. Grounded on
// zurichess's engine/position.go PositionFromFEN/pos.String(), which
// tokenizes the same six whitespace-separated fields; rebuilt here
// against this package's Board fields and wrapped in ErrInvalidFen per
// the error-handling contract (a malformed FEN must never leave a
// partially built Board behind).
package engine

import (
	"strconv"
	"strings"
)

var fenPieceKind = map[byte]PieceKind{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// FromFEN parses fen into a fresh Board. On error the returned Board is
// nil; no partially constructed Board is ever returned.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errBadFen("expected at least 4 fields, got %d in %q", len(fields), fen)
	}
	for len(fields) < 6 {
		// Halfmove clock and fullmove number are sometimes omitted;
		// default them the way most FEN producers do.
		fields = append(fields, []string{"0", "1"}[len(fields)-4])
	}

	b := &Board{}

	if err := b.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, errBadFen("bad active color %q", fields[1])
	}

	castling, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	b.castling = castling

	ep := SquareNone
	if fields[3] != "-" {
		ep, err = SquareFromString(fields[3])
		if err != nil {
			return nil, errBadFen("bad en passant square %q", fields[3])
		}
	}
	b.enPassant = ep

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, errBadFen("bad halfmove clock %q", fields[4])
	}
	b.halfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, errBadFen("bad fullmove number %q", fields[5])
	}
	b.fullmoveNumber = fullmove

	b.hash = b.computeHashFromScratch()
	b.hashHistory = []uint64{b.hash}
	b.refreshAttacks()

	return b, nil
}

func (b *Board) parsePlacement(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return errBadFen("expected 8 ranks, got %d in %q", len(ranks), field)
	}
	for i, rankField := range ranks {
		r := 7 - i
		f := 0
		for _, ch := range []byte(rankField) {
			switch {
			case ch >= '1' && ch <= '8':
				f += int(ch - '0')
			case ch == 'P' || ch == 'N' || ch == 'B' || ch == 'R' || ch == 'Q' || ch == 'K':
				if f > 7 {
					return errBadFen("rank %q overflows", rankField)
				}
				b.put(RankFile(r, f), NewPiece(White, fenPieceKind[ch+'a'-'A']))
				f++
			case ch == 'p' || ch == 'n' || ch == 'b' || ch == 'r' || ch == 'q' || ch == 'k':
				if f > 7 {
					return errBadFen("rank %q overflows", rankField)
				}
				b.put(RankFile(r, f), NewPiece(Black, fenPieceKind[ch]))
				f++
			default:
				return errBadFen("bad piece placement character %q", string(ch))
			}
		}
		if f != 8 {
			return errBadFen("rank %q does not cover 8 files", rankField)
		}
	}
	return nil
}

func parseCastling(field string) (Castle, error) {
	if field == "-" {
		return NoCastle, nil
	}
	var c Castle
	for _, ch := range []byte(field) {
		switch ch {
		case 'K':
			c |= WhiteOO
		case 'Q':
			c |= WhiteOOO
		case 'k':
			c |= BlackOO
		case 'q':
			c |= BlackOOO
		default:
			return NoCastle, errBadFen("bad castling rights character %q", string(ch))
		}
	}
	return c, nil
}

// computeHashFromScratch recomputes the zobrist hash from board state,
// used once at FEN-load time instead of threading an incremental hash
// through parsePlacement.
func (b *Board) computeHashFromScratch() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.pieceOn[sq]; p != Empty {
			h ^= pieceZobrist(p, sq)
		}
	}
	h ^= castleZobrist(b.castling)
	h ^= enPassantZobrist(b.enPassant)
	if b.sideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// ToFEN renders the current position as a FEN string.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := b.pieceOn[RankFile(r, f)]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

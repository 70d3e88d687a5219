// notation.go parses the UCI-style move string described in spec.md
// §6, the exact inverse of Move.UCI(). Supplemented from
// original_source/'s MoveNotations.cpp, which resolves a bare
// origin-destination-promotion string against the legal moves of a
// position rather than guessing the move's flag bits itself — a UCI
// string alone cannot distinguish a quiet king step from castling, or
// a pawn capture from en passant, without board context.
package engine

import "fmt"

// ParseUCIMove parses s ("e2e4", "e7e8q", ...) against b's legal moves
// and returns the matching Move. Returns ErrInvalidMoveString if s is
// malformed and ErrIllegalMove if it is well-formed but not legal here.
func ParseUCIMove(b *Board, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: bad move string %q", ErrInvalidMoveString, s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: bad origin in %q", ErrInvalidMoveString, s)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: bad destination in %q", ErrInvalidMoveString, s)
	}

	wantPromo := NoKind
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			wantPromo = Knight
		case 'b':
			wantPromo = Bishop
		case 'r':
			wantPromo = Rook
		case 'q':
			wantPromo = Queen
		default:
			return NullMove, fmt.Errorf("%w: bad promotion letter in %q", ErrInvalidMoveString, s)
		}
	}

	for _, m := range b.GenerateLegalMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() != (wantPromo != NoKind) {
			continue
		}
		if wantPromo != NoKind && m.PromotionKind() != wantPromo {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("%w: %q is not legal here", ErrIllegalMove, s)
}

// san.go renders a Move as Standard Algebraic Notation for display,
// per spec.md §6: disambiguating when more than one like piece can
// reach the destination, and appending '+'/'#' for check/mate.
// Grounded on zurichess's move-to-string conversion idiom (build the
// string incrementally, consult the position for context) but
// generalized to full disambiguation instead of zurichess's simpler
// LAN-only renderer.
package engine

import "strings"

// SAN renders m, which must be legal in b's current position, as
// Standard Algebraic Notation. b is left unchanged.
func (b *Board) SAN(m Move) string {
	if m.IsCastle() {
		s := "O-O"
		if m.Flag() == FlagCastleQueen {
			s = "O-O-O"
		}
		return s + b.checkSuffix(m)
	}

	mover := b.pieceOn[m.From()]
	var sb strings.Builder

	if mover.Kind() == Pawn {
		if m.IsCapture() {
			sb.WriteByte("abcdefgh"[m.From().File()])
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteString(strings.ToUpper(m.PromotionKind().String()))
		}
		return sb.String() + b.checkSuffix(m)
	}

	sb.WriteString(strings.ToUpper(mover.Kind().String()))
	sb.WriteString(b.disambiguate(m))
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To().String())
	return sb.String() + b.checkSuffix(m)
}

// disambiguate returns the minimal origin-square fragment ("", file,
// rank, or both) needed to distinguish m from other legal moves of the
// same piece kind to the same destination.
func (b *Board) disambiguate(m Move) string {
	mover := b.pieceOn[m.From()]
	sameFile, sameRank, ambiguous := false, false, false

	for _, cand := range b.GenerateLegalMoves() {
		if cand == m || cand.To() != m.To() {
			continue
		}
		if b.pieceOn[cand.From()] != mover {
			continue
		}
		ambiguous = true
		if cand.From().File() == m.From().File() {
			sameFile = true
		}
		if cand.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}

	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return string([]byte{"abcdefgh"[m.From().File()]})
	case !sameRank:
		return string([]byte{"12345678"[m.From().Rank()]})
	default:
		return m.From().String()
	}
}

// checkSuffix plays m, reports whether it gives check or mate, and
// undoes it, leaving b unchanged.
func (b *Board) checkSuffix(m Move) string {
	b.MakeMove(m)
	defer b.UndoMove()

	if !b.IsCheck() {
		return ""
	}
	if len(b.GenerateLegalMoves()) == 0 {
		return "#"
	}
	return "+"
}

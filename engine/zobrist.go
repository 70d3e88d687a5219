// zobrist.go implements the position hash. Grounded on zurichess's
// engine/zobrist.go (one random key per (piece,square), one per
// castling-rights value, one per side, one per en-passant file),
// seeded deterministically so the hash is reproducible across runs.
package engine

import "math/rand"

var (
	zobristPiece     [16][64]uint64 // indexed by Piece, Square
	zobristCastle    [16]uint64     // indexed by Castle bitmask
	zobristEnPassant [9]uint64      // index 8 means "no en passant"
	zobristSide      uint64
)

func init() {
	rng := rand.New(rand.NewSource(0xC0FFEE))
	for p := 0; p < 16; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.Uint64()
		}
	}
	for c := 0; c < 16; c++ {
		zobristCastle[c] = rng.Uint64()
	}
	for f := 0; f < 9; f++ {
		zobristEnPassant[f] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

func pieceZobrist(p Piece, sq Square) uint64 { return zobristPiece[p][sq] }

func castleZobrist(c Castle) uint64 { return zobristCastle[c] }

// enPassantZobrist returns the key for the en-passant file, or the
// "no en passant" key when sq is SquareNone.
func enPassantZobrist(sq Square) uint64 {
	if sq == SquareNone {
		return zobristEnPassant[8]
	}
	return zobristEnPassant[sq.File()]
}

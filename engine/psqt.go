// psqt.go holds the piece-square tables the evaluator blends by game
// phase. Values follow the well-known "simplified evaluation function"
// public-domain tutorial numbers (Tomasz Michniewski's piece-square
// tables, widely reproduced across chess-programming references) in
// place of zurichess's externally tuned PSQT, which cannot be
// reproduced without its original tuning run. Tables are written here
// rank 8 first, as conventionally published, and converted to this
// package's rank-0-is-rank-1 Square indexing at init time.
package engine

var (
	psqtMg [7][64]int32
	psqtEg [7][64]int32
)

func buildTable(rows [8][8]int32) [64]int32 {
	var t [64]int32
	for i, row := range rows {
		r := 7 - i
		for f, v := range row {
			t[RankFile(r, f)] = v
		}
	}
	return t
}

func init() {
	psqtMg[Pawn] = buildTable([8][8]int32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{10, 10, 20, 30, 30, 20, 10, 10},
		{5, 5, 10, 25, 25, 10, 5, 5},
		{0, 0, 0, 20, 20, 0, 0, 0},
		{5, -5, -10, 0, 0, -10, -5, 5},
		{5, 10, 10, -20, -20, 10, 10, 5},
		{0, 0, 0, 0, 0, 0, 0, 0},
	})
	psqtMg[Knight] = buildTable([8][8]int32{
		{-50, -40, -30, -30, -30, -30, -40, -50},
		{-40, -20, 0, 0, 0, 0, -20, -40},
		{-30, 0, 10, 15, 15, 10, 0, -30},
		{-30, 5, 15, 20, 20, 15, 5, -30},
		{-30, 0, 15, 20, 20, 15, 0, -30},
		{-30, 5, 10, 15, 15, 10, 5, -30},
		{-40, -20, 0, 5, 5, 0, -20, -40},
		{-50, -40, -30, -30, -30, -30, -40, -50},
	})
	psqtMg[Bishop] = buildTable([8][8]int32{
		{-20, -10, -10, -10, -10, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 10, 10, 5, 0, -10},
		{-10, 5, 5, 10, 10, 5, 5, -10},
		{-10, 0, 10, 10, 10, 10, 0, -10},
		{-10, 10, 10, 10, 10, 10, 10, -10},
		{-10, 5, 0, 0, 0, 0, 5, -10},
		{-20, -10, -10, -10, -10, -10, -10, -20},
	})
	psqtMg[Rook] = buildTable([8][8]int32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, 10, 10, 10, 10, 5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{0, 0, 0, 5, 5, 0, 0, 0},
	})
	psqtMg[Queen] = buildTable([8][8]int32{
		{-20, -10, -10, -5, -5, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 5, 5, 5, 0, -10},
		{-5, 0, 5, 5, 5, 5, 0, -5},
		{0, 0, 5, 5, 5, 5, 0, -5},
		{-10, 5, 5, 5, 5, 5, 0, -10},
		{-10, 0, 5, 0, 0, 0, 0, -10},
		{-20, -10, -10, -5, -5, -10, -10, -20},
	})
	psqtMg[King] = buildTable([8][8]int32{
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-20, -30, -30, -40, -40, -30, -30, -20},
		{-10, -20, -20, -20, -20, -20, -20, -10},
		{20, 20, 0, 0, 0, 0, 20, 20},
		{20, 30, 10, 0, 0, 10, 30, 20},
	})

	// Endgame tables: pawns pushed harder, king centralized. Other
	// pieces reuse their middlegame table since the pack's reference
	// evaluators do not carry separate endgame tables for minors/rooks
	// either; only pawn and king shape change enough to warrant one.
	psqtEg[Pawn] = buildTable([8][8]int32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{80, 80, 80, 80, 80, 80, 80, 80},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{30, 30, 30, 30, 30, 30, 30, 30},
		{20, 20, 20, 20, 20, 20, 20, 20},
		{10, 10, 10, 10, 10, 10, 10, 10},
		{10, 10, 10, 10, 10, 10, 10, 10},
		{0, 0, 0, 0, 0, 0, 0, 0},
	})
	psqtEg[Knight] = psqtMg[Knight]
	psqtEg[Bishop] = psqtMg[Bishop]
	psqtEg[Rook] = psqtMg[Rook]
	psqtEg[Queen] = psqtMg[Queen]
	psqtEg[King] = buildTable([8][8]int32{
		{-50, -40, -30, -20, -20, -30, -40, -50},
		{-30, -20, -10, 0, 0, -10, -20, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -30, 0, 0, 0, 0, -30, -30},
		{-50, -30, -30, -30, -30, -30, -30, -50},
	})
}

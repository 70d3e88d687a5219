// pv.go implements the per-ply principal-variation table. Grounded on
// zurichess's engine/pv.go hash-indexed PV table, rebuilt over this
// package's triangular slice-per-ply storage since the spec does not fix a
// maximum line length beyond MaxPly.
package engine

// PVTable holds, for every ply, the best known line from that ply
// onward.
type PVTable struct {
	lines [MaxPly][]Move
}

// Clear empties the stored line at ply.
func (pv *PVTable) Clear(ply int) {
	pv.lines[ply] = pv.lines[ply][:0]
}

// Update sets ply's line to m followed by child's line (the line
// stored at ply+1), the standard PV-table propagation step.
func (pv *PVTable) Update(ply int, m Move, child []Move) {
	line := pv.lines[ply][:0]
	line = append(line, m)
	line = append(line, child...)
	pv.lines[ply] = line
}

// Line returns the stored line at ply.
func (pv *PVTable) Line(ply int) []Move {
	return pv.lines[ply]
}

// Root returns the full principal variation from the root.
func (pv *PVTable) Root() []Move {
	return pv.lines[0]
}

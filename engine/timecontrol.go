// timecontrol.go turns the search(timeMs, treatAsTimeControl) contract
// of spec.md §6 into a concrete time budget. Grounded on zurichess's
// engine/time_control.go (a fraction-of-remaining-clock allocator) but
// simplified to the one case spec.md actually prescribes: an exact
// budget when treatAsTimeControl is false, and a conservative slice of
// the declared remaining clock otherwise.
package engine

import "time"

// allocateTime returns how long Search should run.
func allocateTime(timeMs int, treatAsTimeControl bool) time.Duration {
	if !treatAsTimeControl {
		return time.Duration(timeMs) * time.Millisecond
	}
	budgetMs := timeMs / 20
	if budgetMs < 50 {
		budgetMs = 50
	}
	if budgetMs > timeMs {
		budgetMs = timeMs
	}
	return time.Duration(budgetMs) * time.Millisecond
}

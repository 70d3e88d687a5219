// engine_api.go is the package's control surface: the Engine type a
// caller (a UCI loop, a test, a lazy-SMP driver) actually talks to.
// Grounded on zurichess's engine/engine.go Engine wrapper (a Board plus
// options, exposing SetPosition/Search/Stop) but extended per
// SPEC_FULL.md §4.10/§5 with multi-PV accessors and a lazy-SMP runner.
// Logging follows the pack's op/go-logging idiom: a package logger used
// only at construction, configuration, and end-of-search boundaries,
// never inside the search hot path.
package engine

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"
)

var logger = logging.MustGetLogger("engine")

// Engine owns one Board, its evaluator, and a private set of
// move-ordering heuristics, plus a handle to a transposition table that
// may be shared with sibling Engines in a lazy-SMP run.
type Engine struct {
	board    *Board
	eval     Evaluator
	tt       *TranspositionTable
	searcher *Searcher

	numVariations int
	variations    []Variation
}

// NewEngine builds an Engine backed by a fresh table of ttSizeMB
// megabytes and the default handcrafted evaluator.
func NewEngine(ttSizeMB int) *Engine {
	b := NewBoard()
	tt := NewTranspositionTable(ttSizeMB)
	eval := NewHandcraftedEvaluator(b, DefaultEvalConfig())
	logger.Infof("engine initialized: %d MB hash table", ttSizeMB)
	return &Engine{
		board:         b,
		eval:          eval,
		tt:            tt,
		searcher:      NewSearcher(b, eval, tt),
		numVariations: 1,
	}
}

// SetPosition resets the board to fen and then plays moves in UCI
// notation in order, returning the first error encountered.
func (e *Engine) SetPosition(fen string, moves []string) error {
	b, err := FromFEN(fen)
	if err != nil {
		logger.Warningf("rejecting position %q: %v", fen, err)
		return err
	}
	for _, s := range moves {
		m, err := ParseUCIMove(b, s)
		if err != nil {
			logger.Warningf("rejecting move %q: %v", s, err)
			return err
		}
		b.MakeMove(m)
	}
	e.board = b
	e.eval = NewHandcraftedEvaluator(b, e.eval.(*HandcraftedEvaluator).cfg)
	e.searcher = NewSearcher(e.board, e.eval, e.tt)
	return nil
}

// SetNumVariations sets how many root lines Search should report.
func (e *Engine) SetNumVariations(k int) {
	if k < 1 {
		k = 1
	}
	e.numVariations = k
}

// SetHashTableSize reallocates the shared transposition table.
func (e *Engine) SetHashTableSize(mb int) error {
	if err := e.tt.SetHashTableSize(mb); err != nil {
		logger.Errorf("hash resize to %d MB failed: %v", mb, err)
		return err
	}
	logger.Infof("hash table resized to %d MB", mb)
	return nil
}

// ClearHashTable empties the transposition table in place.
func (e *Engine) ClearHashTable() { e.tt.ClearHashTable() }

// Search runs a search to the given time budget and stores the
// resulting variations.
func (e *Engine) Search(timeMs int, treatAsTimeControl bool) {
	e.variations = e.searcher.Search(timeMs, treatAsTimeControl, e.numVariations)
	if len(e.variations) > 0 {
		logger.Infof("search done: best=%s score=%d", e.variations[0].Moves[0], e.variations[0].Score)
	}
}

// Stop requests the running search to return as soon as possible.
func (e *Engine) Stop() { e.searcher.Stop() }

// GetBestMove returns the root move of the top-scoring variation.
func (e *Engine) GetBestMove() (Move, bool) {
	if len(e.variations) == 0 || len(e.variations[0].Moves) == 0 {
		return NullMove, false
	}
	return e.variations[0].Moves[0], true
}

// GetBestMoveScore returns the score of the top-scoring variation.
func (e *Engine) GetBestMoveScore() (int32, bool) {
	if len(e.variations) == 0 {
		return 0, false
	}
	return e.variations[0].Score, true
}

// GetPrincipalVariation returns the full top-scoring line.
func (e *Engine) GetPrincipalVariation() []Move {
	if len(e.variations) == 0 {
		return nil
	}
	return e.variations[0].Moves
}

// GetVariations returns every stored line, best first.
func (e *Engine) GetVariations() []Variation { return e.variations }

// LoadEvalConfig decodes an EvalConfig from a TOML file at path,
// falling back to nothing on error: the caller decides whether to keep
// the previous config.
func LoadEvalConfig(path string) (EvalConfig, error) {
	cfg := DefaultEvalConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return EvalConfig{}, fmt.Errorf("loading eval config %q: %w", path, err)
	}
	return cfg, nil
}

// RunLazySMP runs n independent search tasks against copies of the
// current position, sharing one transposition table, and returns the
// variations reported by task 0 once every task has returned (spec.md
// §5): the shared table is the only channel through which the helper
// tasks influence the reporting task's result.
func RunLazySMP(ctx context.Context, e *Engine, n int, timeMs int, treatAsTimeControl bool) ([]Variation, error) {
	if n < 1 {
		n = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	results := make([][]Variation, n)

	for i := 0; i < n; i++ {
		i := i
		b, err := FromFEN(e.board.ToFEN())
		if err != nil {
			return nil, fmt.Errorf("cloning position for lazy-SMP task %d: %w", i, err)
		}
		hce, ok := e.eval.(*HandcraftedEvaluator)
		cfg := DefaultEvalConfig()
		if ok {
			cfg = hce.cfg
		}
		eval := NewHandcraftedEvaluator(b, cfg)
		searcher := NewSearcher(b, eval, e.tt)

		g.Go(func() error {
			done := make(chan struct{})
			go func() {
				results[i] = searcher.Search(timeMs, treatAsTimeControl, e.numVariations)
				close(done)
			}()
			select {
			case <-ctx.Done():
				searcher.Stop()
				<-done
				return nil
			case <-done:
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.variations = results[0]
	return results[0], nil
}

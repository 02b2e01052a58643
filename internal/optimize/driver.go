package optimize

import (
	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

// iterations is the fixed number of times the five-pass sequence runs over
// the module. Statistics depend on the cumulative count across iterations;
// changing this constant changes observable behavior, including how many
// stores in a chain of same-pointer stores a single Run call can collapse.
const iterations = 3

// Options controls what the driver runs before and during the pipeline.
type Options struct {
	// Mem2Reg requests memory-to-register promotion once before the loop.
	Mem2Reg bool
	// DisableCSE skips the whole optimization pipeline, passing the module
	// through unchanged.
	DisableCSE bool
	Layout     *ir.DataLayout
}

// Run executes the driver against m and returns the statistics gathered.
func Run(m *ir.Module, opts Options) *stats.Counters {
	st := stats.New()
	layout := opts.Layout
	if layout == nil {
		layout = ir.DefaultDataLayout
	}

	if opts.Mem2Reg {
		for _, fn := range m.Functions {
			ir.PromoteMemoryToRegister(fn)
		}
	}

	if opts.DisableCSE {
		return st
	}

	for i := 0; i < iterations; i++ {
		DCE(m, st)
		Simplify(m, layout, st)
		CSE(m, st)
		RedundantLoad(m, st)
		RedundantStore(m, st)
	}
	return st
}

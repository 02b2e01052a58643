// Package stats is a named-counter facility: a process-wide monotonic
// integer map, read and written only from the single optimization thread.
package stats

import "ssaopt/internal/ir"

// Names lists every counter in declared enumeration order, the order the
// CLI's CSV and verbose dump use.
var Names = []string{
	"CSEDead",
	"CSESimplify",
	"CSEElim",
	"CSELdElim",
	"CSEStore2Load",
	"CSEStElim",
}

// SummaryNames lists the module-shape counters Summarize reports, in the
// order original_source's summarize()/print_csv_file combined them with the
// CSE counters into one CSV: total functions, instructions, loads, and
// stores. These describe the module, not a transformation, so they are
// computed once by the CLI rather than incremented by any pass.
var SummaryNames = []string{
	"Functions",
	"Instructions",
	"Loads",
	"Stores",
}

// Summarize counts, for m, the module-shape statistics original_source's
// summarize() reports alongside the CSE counters: the number of
// non-empty functions, and the total instruction/load/store counts across
// the whole module. Unlike the CSE counters, these are a snapshot of m at
// call time, not a monotonic transformation count, so callers typically
// call this once after optimization completes.
func Summarize(m *ir.Module) []Entry {
	var functions, instructions, loads, stores int64
	for _, fn := range m.Functions {
		if len(fn.Blocks) == 0 {
			continue
		}
		functions++
		for _, b := range fn.Blocks {
			for _, inst := range b.Instructions {
				instructions++
				switch inst.Op {
				case ir.OpLoad:
					loads++
				case ir.OpStore:
					stores++
				}
			}
		}
	}
	return []Entry{
		{Name: "Functions", Value: functions},
		{Name: "Instructions", Value: instructions},
		{Name: "Loads", Value: loads},
		{Name: "Stores", Value: stores},
	}
}

// Counters is a named monotonic integer map. The zero value is ready to use.
type Counters struct {
	values map[string]int64
}

// New returns an empty Counters with every declared name initialized to zero.
func New() *Counters {
	c := &Counters{values: make(map[string]int64, len(Names))}
	for _, name := range Names {
		c.values[name] = 0
	}
	return c
}

// Inc increments the named counter by one. Incrementing an undeclared name
// still records it, but every core pass only ever increments a Names entry.
func (c *Counters) Inc(name string) {
	if c.values == nil {
		c.values = make(map[string]int64)
	}
	c.values[name]++
}

// Value returns the current value of the named counter.
func (c *Counters) Value(name string) int64 { return c.values[name] }

// NonZero returns (name, value) pairs for every non-zero counter, in
// declared enumeration order.
func (c *Counters) NonZero() []Entry {
	var out []Entry
	for _, name := range Names {
		if v := c.values[name]; v != 0 {
			out = append(out, Entry{Name: name, Value: v})
		}
	}
	return out
}

// Entry is one (name, value) pair as reported to the CLI.
type Entry struct {
	Name  string
	Value int64
}

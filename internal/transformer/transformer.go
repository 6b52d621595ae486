package transformer

import (
	"csvclean/internal/metrics"
	"csvclean/internal/table"
)

// Transformer is one cleaning stage. It receives the table and the run's
// stats accumulator and hands back the (possibly reshaped) table. Stages
// mutate stats additively and never fail.
type Transformer interface {
	Apply(t *table.Table, st *metrics.RunStats) *table.Table
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(t *table.Table, st *metrics.RunStats) *table.Table {
	out := t
	for _, tr := range c {
		out = tr.Apply(out, st)
	}
	return out
}

package core

import (
	"github.com/huangsam/binbridge/core/algo"
	"github.com/huangsam/binbridge/schema"
)

// projected is the in-memory source behind a projection. It owns its slices.
type projected struct {
	edges  []float64
	values []float64
	errs   []float64
}

var _ schema.Hist1D = &projected{}

func (p *projected) Len() int { return len(p.values) }

func (p *projected) Bin(i int) schema.Bin1D {
	lo, hi := p.edges[i], p.edges[i+1]
	return schema.Bin1D{
		Center:    0.5 * (lo + hi),
		Value:     p.values[i],
		ErrLow:    p.errs[i],
		ErrHigh:   p.errs[i],
		HalfWidth: 0.5 * (hi - lo),
	}
}

func (p *projected) Clone(string) schema.Hist1D {
	return &projected{
		edges:  append([]float64(nil), p.edges...),
		values: append([]float64(nil), p.values...),
		errs:   append([]float64(nil), p.errs...),
	}
}

func (p *projected) Rebin(factor int) error {
	if err := algo.CheckFactor(p.Len(), factor); err != nil {
		return err
	}
	p.edges = algo.MergeEdges(p.edges, factor)
	p.values = algo.MergeSums(p.values, factor)
	p.errs = algo.MergeQuadrature(p.errs, factor)
	return nil
}

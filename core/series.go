package core

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/huangsam/binbridge/core/algo"
	"github.com/huangsam/binbridge/schema"
)

// Series is a one-dimensional binned dataset extracted from a store.
// All exported slices have the same length. Errors[i] is the larger of
// ErrLow[i] and ErrHigh[i].
type Series struct {
	Name       string
	Centers    []float64
	Values     []float64
	Errors     []float64
	ErrLow     []float64
	ErrHigh    []float64
	HalfWidths []float64

	id    string
	src   schema.Hist1D
	scale float64
}

// NewSeries extracts a Series from a private clone of src identified by id.
// Only WithRebin and WithScale apply to a Series.
func NewSeries(src schema.Hist1D, id string, opts ...Option) (*Series, error) {
	o := newOptions(opts)
	clone := src.Clone(id)
	if err := algo.CheckFactor(clone.Len(), o.rebin); err != nil {
		return nil, err
	}
	if o.rebin > 1 {
		if err := clone.Rebin(o.rebin); err != nil {
			return nil, err
		}
	}
	s := extractSeries(clone)
	s.id = id
	s.src = clone
	if o.scale != 1 {
		s.Scale(o.scale)
	}
	return s, nil
}

// extractSeries reads every bin of h into a fresh Series with unit scale.
func extractSeries(h schema.Hist1D) *Series {
	n := h.Len()
	s := &Series{
		Centers:    make([]float64, n),
		Values:     make([]float64, n),
		Errors:     make([]float64, n),
		ErrLow:     make([]float64, n),
		ErrHigh:    make([]float64, n),
		HalfWidths: make([]float64, n),
		scale:      1,
	}
	for i := range n {
		b := h.Bin(i)
		s.Centers[i] = b.Center
		s.Values[i] = b.Value
		s.ErrLow[i] = math.Abs(b.ErrLow)
		s.ErrHigh[i] = math.Abs(b.ErrHigh)
		s.Errors[i] = math.Max(s.ErrLow[i], s.ErrHigh[i])
		s.HalfWidths[i] = math.Abs(b.HalfWidth)
	}
	return s
}

// Len returns the number of bins.
func (s *Series) Len() int {
	return len(s.Values)
}

// Scale multiplies values by k and errors by |k|. Centers and widths are unchanged.
func (s *Series) Scale(k float64) {
	s.scaleArrays(k)
	s.scale *= k
}

func (s *Series) scaleArrays(k float64) {
	ak := math.Abs(k)
	for i := range s.Values {
		s.Values[i] *= k
		s.Errors[i] *= ak
		s.ErrLow[i] *= ak
		s.ErrHigh[i] *= ak
	}
}

// ScaleFactor returns the product of every scale applied so far.
func (s *Series) ScaleFactor() float64 {
	return s.scale
}

// Rebin merges factor adjacent bins using the merge primitive of the source.
// Geometry is re-derived from the merged binning and the accumulated scale is
// applied again. On error the Series is left untouched.
func (s *Series) Rebin(factor int) error {
	if err := algo.CheckFactor(s.Len(), factor); err != nil {
		return err
	}
	if factor == 1 {
		return nil
	}
	clone := s.src.Clone(s.id)
	if err := clone.Rebin(factor); err != nil {
		return err
	}
	fresh := extractSeries(clone)
	fresh.scaleArrays(s.scale)

	s.Centers = fresh.Centers
	s.Values = fresh.Values
	s.Errors = fresh.Errors
	s.ErrLow = fresh.ErrLow
	s.ErrHigh = fresh.ErrHigh
	s.HalfWidths = fresh.HalfWidths
	s.src = clone
	return nil
}

// AreaNorm scales s so that its total matches ref and returns the factor.
func (s *Series) AreaNorm(ref *Series) (float64, error) {
	return s.normTo(ref.Sum())
}

// Norm scales s to unit total and returns the factor.
func (s *Series) Norm() (float64, error) {
	return s.normTo(1)
}

func (s *Series) normTo(total float64) (float64, error) {
	sum := s.Sum()
	if sum == 0 {
		return 0, ErrDivisionByZero
	}
	factor := total / sum
	s.Scale(factor)
	return factor, nil
}

// Sum returns the total of all bin values.
func (s *Series) Sum() float64 {
	return algo.Sum(s.Values)
}

// Mean returns the content-weighted mean of the bin centers.
func (s *Series) Mean() float64 {
	if s.Len() == 0 || s.Sum() == 0 {
		return math.NaN()
	}
	return stats.Sample{Xs: s.Centers, Weights: s.Values}.Mean()
}

// StdDev returns the content-weighted standard deviation of the bin centers.
func (s *Series) StdDev() float64 {
	mean := s.Mean()
	if math.IsNaN(mean) {
		return math.NaN()
	}
	dev := make([]float64, s.Len())
	for i, c := range s.Centers {
		dev[i] = (c - mean) * (c - mean)
	}
	variance := stats.Sample{Xs: dev, Weights: s.Values}.Mean()
	if variance < 0 {
		return math.NaN()
	}
	return math.Sqrt(variance)
}

// Edges reconstructs the bin edges from centers and half widths.
func (s *Series) Edges() []float64 {
	n := s.Len()
	if n == 0 {
		return []float64{}
	}
	edges := make([]float64, n+1)
	for i := range n {
		edges[i] = s.Centers[i] - s.HalfWidths[i]
	}
	edges[n] = s.Centers[n-1] + s.HalfWidths[n-1]
	return edges
}

// Clone returns an independent copy of s whose source clone is identified by id.
func (s *Series) Clone(id string) *Series {
	src := s.src.Clone(id)
	return &Series{
		Name:       s.Name,
		Centers:    append([]float64(nil), s.Centers...),
		Values:     append([]float64(nil), s.Values...),
		Errors:     append([]float64(nil), s.Errors...),
		ErrLow:     append([]float64(nil), s.ErrLow...),
		ErrHigh:    append([]float64(nil), s.ErrHigh...),
		HalfWidths: append([]float64(nil), s.HalfWidths...),
		id:         id,
		src:        src,
		scale:      s.scale,
	}
}

// ProducePointSeries returns points with error bars, x multiplied by xScale.
func (s *Series) ProducePointSeries(xScale float64) schema.PointSeries {
	return schema.PointSeries{
		Name:     s.Name,
		X:        algo.Scaled(s.Centers, xScale),
		Y:        append([]float64(nil), s.Values...),
		YErr:     append([]float64(nil), s.Errors...),
		YErrLow:  append([]float64(nil), s.ErrLow...),
		YErrHigh: append([]float64(nil), s.ErrHigh...),
	}
}

// ProduceBandSeries returns a central line with a band of one error either side.
func (s *Series) ProduceBandSeries(xScale float64) schema.BandSeries {
	low := make([]float64, s.Len())
	high := make([]float64, s.Len())
	for i, v := range s.Values {
		low[i] = v - s.Errors[i]
		high[i] = v + s.Errors[i]
	}
	return schema.BandSeries{
		Name:  s.Name,
		X:     algo.Scaled(s.Centers, xScale),
		Y:     append([]float64(nil), s.Values...),
		YLow:  low,
		YHigh: high,
	}
}

// ProduceBarSeries returns bars offset by shift with widths scaled by widthFactor.
func (s *Series) ProduceBarSeries(shift, widthFactor float64) schema.BarSeries {
	return schema.BarSeries{
		Name:  s.Name,
		X:     algo.Shifted(s.Centers, shift),
		Y:     append([]float64(nil), s.Values...),
		Width: algo.Scaled(s.HalfWidths, 2*widthFactor),
	}
}

package core

// Option tunes how a dataset is extracted.
type Option func(*options)

type options struct {
	rebin  int
	rebinX int
	rebinY int
	scale  float64
}

func newOptions(opts []Option) options {
	o := options{rebin: 1, rebinX: 1, rebinY: 1, scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRebin merges n adjacent bins of a Series right after extraction.
func WithRebin(n int) Option {
	return func(o *options) { o.rebin = n }
}

// WithScale multiplies the values and errors of a Series after extraction.
func WithScale(k float64) Option {
	return func(o *options) { o.scale = k }
}

// WithRebinXY merges nx adjacent x bins and ny adjacent y bins of a Grid.
func WithRebinXY(nx, ny int) Option {
	return func(o *options) {
		o.rebinX = nx
		o.rebinY = ny
	}
}

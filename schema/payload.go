package schema

// PointSeries holds coordinates for points with error bars.
type PointSeries struct {
	Name     string    `json:"name"`
	X        []float64 `json:"x"`
	Y        []float64 `json:"y"`
	YErr     []float64 `json:"yerr"`
	YErrLow  []float64 `json:"yerr_low"`
	YErrHigh []float64 `json:"yerr_high"`
}

// BandSeries holds a central line and the shaded band around it.
type BandSeries struct {
	Name  string    `json:"name"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	YLow  []float64 `json:"ylow"`
	YHigh []float64 `json:"yhigh"`
}

// BarSeries holds bar positions, heights and widths.
type BarSeries struct {
	Name  string    `json:"name"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Width []float64 `json:"width"`
}

// HeatmapSeries holds the edges and value matrix of a heatmap.
// Matrix is indexed [row][col] where rows follow YEdges and columns follow
// XEdges. Masked cells hold NaN.
type HeatmapSeries struct {
	Name   string      `json:"name"`
	XEdges []float64   `json:"x_edges"`
	YEdges []float64   `json:"y_edges"`
	Matrix [][]float64 `json:"matrix"`
}

// NameEntry is a single row of a scope listing.
type NameEntry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// NameListing is the listing of a scope.
type NameListing struct {
	Scope   string      `json:"scope"`
	Entries []NameEntry `json:"entries"`
}

// Summary describes a binned dataset without its arrays.
type Summary struct {
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	Bins       []int     `json:"bins"`
	Sum        float64   `json:"sum"`
	Mean       float64   `json:"mean"`
	StdDev     float64   `json:"stddev"`
	XMin       float64   `json:"x_min"`
	XMax       float64   `json:"x_max"`
	MajorTicks []float64 `json:"major_ticks"`
}

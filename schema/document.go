package schema

// Document is a snapshot of a scope tree, as read from disk or imported into
// a database.
type Document struct {
	Entries []Entry `json:"entries"`
}

// Entry is a single named object of a Document. Which fields are used depends
// on Kind: "1d" entries use the edges, values and errors fields, "2d" entries
// the x/y edges and cells, "scope" entries their children.
type Entry struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`

	Edges      []float64 `json:"edges,omitempty"`
	Values     []float64 `json:"values,omitempty"`
	Errors     []float64 `json:"errors,omitempty"`
	ErrorsLow  []float64 `json:"errors_low,omitempty"`
	ErrorsHigh []float64 `json:"errors_high,omitempty"`

	XEdges     []float64   `json:"x_edges,omitempty"`
	YEdges     []float64   `json:"y_edges,omitempty"`
	Cells      [][]float64 `json:"cells,omitempty"`
	CellErrors [][]float64 `json:"cell_errors,omitempty"`

	Children []Entry `json:"children,omitempty"`
}

package binstore

import "github.com/huangsam/binbridge/schema"

// sampleDocument returns a small tree covering every kind.
func sampleDocument() *schema.Document {
	return &schema.Document{Entries: []schema.Entry{
		{
			Name:   "h1",
			Kind:   "1d",
			Edges:  []float64{0, 1, 2, 3, 4, 5},
			Values: []float64{1, 2, 3, 4, 5},
		},
		{
			Name:   "h2",
			Kind:   "2d",
			XEdges: []float64{0, 1, 2, 3},
			YEdges: []float64{0, 10, 20},
			Cells:  [][]float64{{1, 2, 3}, {4, 5, 6}},
		},
		{
			Name: "dir",
			Kind: "scope",
			Children: []schema.Entry{
				{
					Name:       "inner",
					Kind:       "1d",
					Edges:      []float64{0, 2, 4},
					Values:     []float64{3, 4},
					ErrorsLow:  []float64{1, 1},
					ErrorsHigh: []float64{2, 2},
				},
			},
		},
		{Name: "note", Kind: "text", Title: "free text"},
	}}
}

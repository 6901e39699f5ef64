package core

import (
	"testing"

	"github.com/huangsam/binbridge/internal/binstore"
	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/require"
)

// fixtureDocument holds one object of every kind plus a nested scope.
func fixtureDocument() *schema.Document {
	return &schema.Document{Entries: []schema.Entry{
		{
			Name:   "pt",
			Kind:   "1d",
			Edges:  []float64{0, 10, 20, 30, 40},
			Values: []float64{2, 4, 6, 8},
			Errors: []float64{0, 0, 0, 0},
		},
		{
			Name:       "asym",
			Kind:       "1d",
			Edges:      []float64{0, 1, 2},
			Values:     []float64{5, 10},
			ErrorsLow:  []float64{1, 3},
			ErrorsHigh: []float64{2, 1},
		},
		{
			Name:   "empty",
			Kind:   "1d",
			Edges:  []float64{0, 1, 2},
			Values: []float64{0, 0},
		},
		{
			Name:   "map",
			Kind:   "2d",
			XEdges: []float64{0, 1, 2, 3},
			YEdges: []float64{0, 5, 10},
			Cells:  [][]float64{{1, 0, 3}, {4, 5, 0}},
		},
		{
			Name: "run1",
			Kind: "scope",
			Children: []schema.Entry{
				{
					Name: "jets",
					Kind: "scope",
					Children: []schema.Entry{
						{Name: "pt", Kind: "1d", Edges: []float64{0, 1}, Values: []float64{42}},
					},
				},
			},
		},
		{Name: "readme", Kind: "text"},
	}}
}

func fixtureContainer(t *testing.T) *Container {
	t.Helper()
	root, err := binstore.NewMemScope(fixtureDocument())
	require.NoError(t, err)
	return NewContainer(root, nil)
}

func fixtureSeries(t *testing.T, name string, opts ...Option) *Series {
	t.Helper()
	s, err := fixtureContainer(t).Series(name, opts...)
	require.NoError(t, err)
	return s
}

func fixtureGrid(t *testing.T, opts ...Option) *Grid {
	t.Helper()
	g, err := fixtureContainer(t).Grid("map", opts...)
	require.NoError(t, err)
	return g
}

package core

import (
	"errors"
	"testing"

	"github.com/huangsam/binbridge/internal/binstore"
	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_Names(t *testing.T) {
	c := fixtureContainer(t)
	assert.Equal(t, []string{"pt", "asym", "empty", "map", "run1", "readme"}, c.Names())
	assert.Empty(t, c.Path())
}

func TestContainer_Listing(t *testing.T) {
	listing := fixtureContainer(t).Listing()
	assert.Equal(t, "/", listing.Scope)
	require.Len(t, listing.Entries, 6)
	assert.Equal(t, schema.NameEntry{Name: "map", Kind: schema.KindTwoDimensional}, listing.Entries[3])
	assert.Equal(t, schema.NameEntry{Name: "readme", Kind: schema.KindOther}, listing.Entries[5])
}

func TestContainer_Match(t *testing.T) {
	c := fixtureContainer(t)
	names, err := c.Match("*a*")
	require.NoError(t, err)
	assert.Equal(t, []string{"asym", "map", "readme"}, names)

	names, err = c.Match("{pt,run?}")
	require.NoError(t, err)
	assert.Equal(t, []string{"pt", "run1"}, names)

	_, err = c.Match("[")
	assert.Error(t, err)
}

func TestContainer_ResolveKinds(t *testing.T) {
	c := fixtureContainer(t)

	r, err := c.Resolve("pt")
	require.NoError(t, err)
	assert.Equal(t, schema.KindOneDimensional, r.Kind)
	assert.NotNil(t, r.Series)
	assert.Nil(t, r.Grid)
	assert.Nil(t, r.Container)

	r, err = c.Resolve("map")
	require.NoError(t, err)
	assert.Equal(t, schema.KindTwoDimensional, r.Kind)
	assert.NotNil(t, r.Grid)

	r, err = c.Resolve("run1")
	require.NoError(t, err)
	assert.Equal(t, schema.KindScope, r.Kind)
	require.NotNil(t, r.Container)
	assert.Equal(t, []string{"run1"}, r.Container.Path())
	assert.Same(t, c.Session(), r.Container.Session())
}

func TestContainer_ResolveNotFound(t *testing.T) {
	_, err := fixtureContainer(t).Resolve("missing")
	require.ErrorIs(t, err, ErrNotFound)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.Name)
	assert.Contains(t, err.Error(), `scope "/"`)
}

func TestContainer_ResolveUnsupported(t *testing.T) {
	_, err := fixtureContainer(t).Resolve("readme")
	require.ErrorIs(t, err, ErrUnsupportedType)
	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, schema.KindOther, unsupported.Kind)
}

func TestContainer_ResolveMissingPayload(t *testing.T) {
	scope := &binstore.MockScope{}
	scope.On("Contains", "broken").Return(true)
	scope.On("Get", "broken").Return(schema.Object{Name: "broken", Kind: schema.KindOneDimensional}, nil)

	_, err := NewContainer(scope, nil).Resolve("broken")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	scope.AssertExpectations(t)
}

func TestContainer_ResolveStoreError(t *testing.T) {
	scope := &binstore.MockScope{}
	scope.On("Contains", "flaky").Return(true)
	scope.On("Get", "flaky").Return(schema.Object{}, binstore.ErrNoEntry)

	_, err := NewContainer(scope, nil).Resolve("flaky")
	assert.ErrorIs(t, err, binstore.ErrNoEntry)
}

func TestContainer_WrongKind(t *testing.T) {
	c := fixtureContainer(t)

	_, err := c.Grid("pt")
	var wrong *WrongKindError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, schema.KindTwoDimensional, wrong.Want)
	assert.Equal(t, schema.KindOneDimensional, wrong.Got)

	_, err = c.Series("map")
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = c.Scope("pt")
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = c.PlotHeatmap("pt", DefaultHeatmapOptions())
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = c.PlotPoints("map", 1)
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = c.PlotBand("run1", 1)
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = c.PlotBar("missing", 0, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContainer_ResolveScope(t *testing.T) {
	c := fixtureContainer(t)

	jets, err := c.ResolveScope([]string{"run1", "jets"})
	require.NoError(t, err)
	assert.Equal(t, []string{"run1", "jets"}, jets.Path())
	assert.Equal(t, []string{"pt"}, jets.Names())

	s, err := jets.Series("pt")
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, s.Values)

	self, err := c.ResolveScope(nil)
	require.NoError(t, err)
	assert.Same(t, c, self)

	_, err = c.ResolveScope([]string{"run1", "missing"})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []string{"run1"}, notFound.Scope)

	_, err = c.ResolveScope([]string{"pt", "x"})
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestContainer_Plots(t *testing.T) {
	c := fixtureContainer(t)

	p, err := c.PlotPoints("pt", 0.5, WithRebin(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 15}, p.X)
	assert.Equal(t, []float64{6, 14}, p.Y)

	b, err := c.PlotBand("asym", 1, WithScale(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 14}, b.YLow)

	bar, err := c.PlotBar("pt", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10, 10, 10}, bar.Width)

	h, err := c.PlotHeatmap("map", HeatmapOptions{XScale: 1, YScale: 1}, WithRebinXY(1, 2))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 5, 3}}, h.Matrix)
}

func TestContainer_ExtractionIDsAreUnique(t *testing.T) {
	c := fixtureContainer(t)
	seen := make(map[string]bool)
	for range 5 {
		s, err := c.Series("pt")
		require.NoError(t, err)
		assert.False(t, seen[s.id], s.id)
		seen[s.id] = true
	}
	assert.Equal(t, uint64(5), c.Session().Extractions())
}

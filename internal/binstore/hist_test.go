package binstore

import (
	"math"
	"testing"

	"github.com/huangsam/binbridge/core/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHist1D_RebinTruncates(t *testing.T) {
	h := newHist1D(sampleDocument().Entries[0])
	require.NoError(t, h.Rebin(2))

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 5.0, h.Overflow())
	assert.Equal(t, 3.0, h.Bin(0).Value)
	assert.Equal(t, 7.0, h.Bin(1).Value)
	assert.Equal(t, 1.0, h.Bin(0).Center)
	assert.Equal(t, 1.0, h.Bin(0).HalfWidth)
	assert.InDelta(t, math.Sqrt(3), h.Bin(0).ErrLow, 1e-12)
	assert.InDelta(t, math.Sqrt(7), h.Bin(1).ErrHigh, 1e-12)
}

func TestHist1D_RebinRejectsBadFactor(t *testing.T) {
	h := newHist1D(sampleDocument().Entries[0])
	assert.ErrorIs(t, h.Rebin(0), algo.ErrInvalidFactor)
	assert.ErrorIs(t, h.Rebin(6), algo.ErrInvalidFactor)
	assert.Equal(t, 5, h.Len())

	require.NoError(t, h.Rebin(1))
	assert.Equal(t, 5, h.Len())
	assert.Zero(t, h.Overflow())
}

func TestHist1D_CloneIsIndependent(t *testing.T) {
	h := newHist1D(sampleDocument().Entries[0])
	c := h.Clone("copy").(*Hist1D)
	require.NoError(t, c.Rebin(5))

	assert.Equal(t, "copy", c.ID())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 15.0, c.Bin(0).Value)
	assert.Equal(t, 5, h.Len())
}

func TestHist2D_RebinX(t *testing.T) {
	h := newHist2D(sampleDocument().Entries[1])
	require.NoError(t, h.RebinX(2))

	assert.Equal(t, []float64{0, 2}, h.XEdges())
	assert.Equal(t, 3.0, h.Content(0, 0))
	assert.Equal(t, 9.0, h.Content(0, 1))
	assert.Equal(t, 9.0, h.Overflow())
	assert.InDelta(t, 3.0, h.Error(0, 1), 1e-12)
}

func TestHist2D_RebinY(t *testing.T) {
	h := newHist2D(sampleDocument().Entries[1])
	require.NoError(t, h.RebinY(2))

	assert.Equal(t, []float64{0, 20}, h.YEdges())
	assert.Equal(t, []float64{0, 1, 2, 3}, h.XEdges())
	assert.Equal(t, 5.0, h.Content(0, 0))
	assert.Equal(t, 9.0, h.Content(2, 0))
	assert.Zero(t, h.Overflow())
	assert.ErrorIs(t, h.RebinY(2), algo.ErrInvalidFactor)
}

func TestHist2D_CloneIsIndependent(t *testing.T) {
	h := newHist2D(sampleDocument().Entries[1])
	c := h.Clone("copy")
	require.NoError(t, c.RebinX(3))

	assert.Equal(t, []float64{0, 3}, c.XEdges())
	assert.Equal(t, 6.0, c.Content(0, 0))
	assert.Equal(t, 1.0, h.Content(0, 0))
}

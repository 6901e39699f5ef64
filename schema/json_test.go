package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmapSeriesMarshalsNaNAsNull(t *testing.T) {
	h := HeatmapSeries{
		Name:   "h",
		XEdges: []float64{0, 1, 2},
		YEdges: []float64{0, 1},
		Matrix: [][]float64{{math.NaN(), 3}},
	}
	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"h","x_edges":[0,1,2],"y_edges":[0,1],"matrix":[[null,3]]}`, string(data))
}

func TestSummaryMarshalsUndefinedStats(t *testing.T) {
	s := Summary{
		Name:   "empty",
		Kind:   KindOneDimensional,
		Bins:   []int{0},
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		XMin:   math.NaN(),
		XMax:   math.Inf(1),
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["mean"])
	assert.Nil(t, decoded["stddev"])
	assert.Nil(t, decoded["x_max"])
	assert.Equal(t, 0.0, decoded["sum"])
	assert.Equal(t, "1d", decoded["kind"])
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindOneDimensional, ParseKind("1d"))
	assert.Equal(t, KindTwoDimensional, ParseKind("2d"))
	assert.Equal(t, KindScope, ParseKind("scope"))
	assert.Equal(t, KindOther, ParseKind("tree"))
}

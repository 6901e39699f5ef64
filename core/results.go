package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
)

// OpenContainer wraps the root of src in a fresh session and descends into scope.
func OpenContainer(src contract.Source, scope []string) (*Container, error) {
	root := NewContainer(src.Root(), nil)
	c, err := root.ResolveScope(scope)
	if err != nil {
		return nil, fmt.Errorf("open scope: %w", err)
	}
	return c, nil
}

// GetListingResult lists the container, keeping only names that match cfg.Pattern.
func GetListingResult(c *Container, cfg *contract.Config) (schema.NameListing, error) {
	listing := c.Listing()
	if cfg.Pattern == "" {
		return listing, nil
	}
	matched, err := c.Match(cfg.Pattern)
	if err != nil {
		return schema.NameListing{}, err
	}
	listing.Entries = slices.DeleteFunc(listing.Entries, func(e schema.NameEntry) bool {
		return !slices.Contains(matched, e.Name)
	})
	return listing, nil
}

// GetPointsResult extracts cfg.Name as points with error bars.
func GetPointsResult(c *Container, cfg *contract.Config) (schema.PointSeries, error) {
	s, err := getSeries(c, cfg)
	if err != nil {
		return schema.PointSeries{}, err
	}
	return s.ProducePointSeries(cfg.XScale), nil
}

// GetBandResult extracts cfg.Name as a central line with its error band.
func GetBandResult(c *Container, cfg *contract.Config) (schema.BandSeries, error) {
	s, err := getSeries(c, cfg)
	if err != nil {
		return schema.BandSeries{}, err
	}
	return s.ProduceBandSeries(cfg.XScale), nil
}

// GetBarResult extracts cfg.Name as bars.
func GetBarResult(c *Container, cfg *contract.Config) (schema.BarSeries, error) {
	s, err := getSeries(c, cfg)
	if err != nil {
		return schema.BarSeries{}, err
	}
	return s.ProduceBarSeries(cfg.Shift, cfg.WidthFactor), nil
}

// getSeries extracts cfg.Name as a Series and applies the requested normalization.
func getSeries(c *Container, cfg *contract.Config) (*Series, error) {
	s, err := c.Series(cfg.Name, seriesOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	if err := normalize(c, s, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// normalize scales s to unit total when cfg.Norm is set, or to the total of
// the stored object cfg.NormTo.
func normalize(c *Container, s *Series, cfg *contract.Config) error {
	var err error
	switch {
	case cfg.NormTo != "":
		var ref *Series
		if ref, err = c.Series(cfg.NormTo); err == nil {
			_, err = s.AreaNorm(ref)
		}
	case cfg.Norm:
		_, err = s.Norm()
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("normalize %q: %w", s.Name, err)
	}
	return nil
}

// GetHeatmapResult extracts cfg.Name as a heatmap.
func GetHeatmapResult(c *Container, cfg *contract.Config) (schema.HeatmapSeries, error) {
	hopts := HeatmapOptions{
		KillZeros: cfg.KillZeros,
		Transpose: cfg.Transpose,
		XScale:    cfg.XScale,
		YScale:    cfg.YScale,
	}
	return c.PlotHeatmap(cfg.Name, hopts, WithRebinXY(cfg.RebinX, cfg.RebinY))
}

// GetProjectionResult projects the Grid cfg.Name onto cfg.Axis and returns the
// result as points. Rebin and scale apply to the projected Series.
func GetProjectionResult(c *Container, cfg *contract.Config) (schema.PointSeries, error) {
	g, err := c.Grid(cfg.Name, WithRebinXY(cfg.RebinX, cfg.RebinY))
	if err != nil {
		return schema.PointSeries{}, err
	}
	var s *Series
	switch cfg.Axis {
	case schema.YAxis:
		s, err = g.ProjectAlongY(cfg.FirstBin, cfg.LastBin, seriesOptions(cfg)...)
	default:
		s, err = g.ProjectAlongX(cfg.FirstBin, cfg.LastBin, seriesOptions(cfg)...)
	}
	if err != nil {
		return schema.PointSeries{}, err
	}
	if err := normalize(c, s, cfg); err != nil {
		return schema.PointSeries{}, err
	}
	return s.ProducePointSeries(cfg.XScale), nil
}

// GetSummaryResult describes the dataset cfg.Name.
func GetSummaryResult(c *Container, cfg *contract.Config) (schema.Summary, error) {
	r, err := c.Resolve(cfg.Name)
	if err != nil {
		return schema.Summary{}, err
	}
	switch r.Kind {
	case schema.KindOneDimensional:
		return r.Series.Summary(), nil
	case schema.KindTwoDimensional:
		return r.Grid.Summary(), nil
	default:
		return schema.Summary{}, &WrongKindError{Name: cfg.Name, Want: schema.KindOneDimensional, Got: r.Kind}
	}
}

func seriesOptions(cfg *contract.Config) []Option {
	return []Option{WithRebin(cfg.Rebin), WithScale(cfg.Scale)}
}

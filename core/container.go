package core

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/huangsam/binbridge/schema"
)

// Container is a navigable view over one scope of a store.
type Container struct {
	scope   schema.Scope
	path    []string
	session *Session
}

// Resolved is the result of resolving a name. Exactly one of Series, Grid or
// Container is set, matching Kind.
type Resolved struct {
	Kind      schema.Kind
	Series    *Series
	Grid      *Grid
	Container *Container
}

// NewContainer wraps the root scope of a store. A nil session gets a fresh one.
func NewContainer(scope schema.Scope, session *Session) *Container {
	if session == nil {
		session = NewSession()
	}
	return &Container{scope: scope, session: session}
}

// Path returns the scope path from the root container.
func (c *Container) Path() []string {
	return slices.Clone(c.path)
}

// Session returns the session used for extractions.
func (c *Container) Session() *Session {
	return c.session
}

// Names returns every name of the scope in store order.
func (c *Container) Names() []string {
	return c.scope.Names()
}

// Listing returns every name of the scope together with its kind.
func (c *Container) Listing() schema.NameListing {
	names := c.scope.Names()
	entries := make([]schema.NameEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, schema.NameEntry{Name: name, Kind: c.scope.Kind(name)})
	}
	return schema.NameListing{Scope: scopeLabel(c.path), Entries: entries}
}

// Match returns the names matching a doublestar pattern, in store order.
func (c *Container) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	var out []string
	for _, name := range c.scope.Names() {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Resolve looks up name in the scope and extracts it as a Series, a Grid or a
// nested Container depending on what the store holds.
func (c *Container) Resolve(name string, opts ...Option) (Resolved, error) {
	if !c.scope.Contains(name) {
		return Resolved{}, &NotFoundError{Scope: c.Path(), Name: name}
	}
	obj, err := c.scope.Get(name)
	if err != nil {
		return Resolved{}, fmt.Errorf("get %q: %w", name, err)
	}

	switch obj.Kind {
	case schema.KindOneDimensional:
		if obj.Hist1D == nil {
			return Resolved{}, &UnsupportedTypeError{Name: name, Kind: obj.Kind}
		}
		s, err := NewSeries(obj.Hist1D, c.session.NextID(c.path, name), opts...)
		if err != nil {
			return Resolved{}, fmt.Errorf("extract %q: %w", name, err)
		}
		s.Name = name
		return Resolved{Kind: obj.Kind, Series: s}, nil
	case schema.KindTwoDimensional:
		if obj.Hist2D == nil {
			return Resolved{}, &UnsupportedTypeError{Name: name, Kind: obj.Kind}
		}
		g, err := NewGrid(obj.Hist2D, c.session.NextID(c.path, name), opts...)
		if err != nil {
			return Resolved{}, fmt.Errorf("extract %q: %w", name, err)
		}
		g.Name = name
		return Resolved{Kind: obj.Kind, Grid: g}, nil
	case schema.KindScope:
		if obj.Scope == nil {
			return Resolved{}, &UnsupportedTypeError{Name: name, Kind: obj.Kind}
		}
		return Resolved{Kind: obj.Kind, Container: c.child(name, obj.Scope)}, nil
	case schema.KindOther:
		return Resolved{}, &UnsupportedTypeError{Name: name, Kind: obj.Kind}
	default:
		return Resolved{}, &UnsupportedTypeError{Name: name, Kind: obj.Kind}
	}
}

func (c *Container) child(name string, scope schema.Scope) *Container {
	path := append(slices.Clone(c.path), name)
	return &Container{scope: scope, path: path, session: c.session}
}

// Series resolves name and requires it to be one-dimensional.
func (c *Container) Series(name string, opts ...Option) (*Series, error) {
	r, err := c.Resolve(name, opts...)
	if err != nil {
		return nil, err
	}
	if r.Kind != schema.KindOneDimensional {
		return nil, &WrongKindError{Name: name, Want: schema.KindOneDimensional, Got: r.Kind}
	}
	return r.Series, nil
}

// Grid resolves name and requires it to be two-dimensional.
func (c *Container) Grid(name string, opts ...Option) (*Grid, error) {
	r, err := c.Resolve(name, opts...)
	if err != nil {
		return nil, err
	}
	if r.Kind != schema.KindTwoDimensional {
		return nil, &WrongKindError{Name: name, Want: schema.KindTwoDimensional, Got: r.Kind}
	}
	return r.Grid, nil
}

// Scope resolves name and requires it to be a nested scope.
func (c *Container) Scope(name string) (*Container, error) {
	r, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	if r.Kind != schema.KindScope {
		return nil, &WrongKindError{Name: name, Want: schema.KindScope, Got: r.Kind}
	}
	return r.Container, nil
}

// ResolveScope descends path one segment at a time.
func (c *Container) ResolveScope(path []string) (*Container, error) {
	cur := c
	for _, seg := range path {
		if !cur.scope.Contains(seg) {
			return nil, &NotFoundError{Scope: cur.Path(), Name: seg}
		}
		if kind := cur.scope.Kind(seg); kind != schema.KindScope {
			return nil, &WrongKindError{Name: seg, Want: schema.KindScope, Got: kind}
		}
		sub, err := cur.scope.Subscope(seg)
		if err != nil {
			return nil, fmt.Errorf("descend into %q: %w", seg, err)
		}
		cur = cur.child(seg, sub)
	}
	return cur, nil
}

// PlotPoints resolves a Series and returns its points.
func (c *Container) PlotPoints(name string, xScale float64, opts ...Option) (schema.PointSeries, error) {
	s, err := c.Series(name, opts...)
	if err != nil {
		return schema.PointSeries{}, err
	}
	return s.ProducePointSeries(xScale), nil
}

// PlotBand resolves a Series and returns its band.
func (c *Container) PlotBand(name string, xScale float64, opts ...Option) (schema.BandSeries, error) {
	s, err := c.Series(name, opts...)
	if err != nil {
		return schema.BandSeries{}, err
	}
	return s.ProduceBandSeries(xScale), nil
}

// PlotBar resolves a Series and returns its bars.
func (c *Container) PlotBar(name string, shift, widthFactor float64, opts ...Option) (schema.BarSeries, error) {
	s, err := c.Series(name, opts...)
	if err != nil {
		return schema.BarSeries{}, err
	}
	return s.ProduceBarSeries(shift, widthFactor), nil
}

// PlotHeatmap resolves a Grid and returns its heatmap.
func (c *Container) PlotHeatmap(name string, hopts HeatmapOptions, opts ...Option) (schema.HeatmapSeries, error) {
	g, err := c.Grid(name, opts...)
	if err != nil {
		return schema.HeatmapSeries{}, err
	}
	return g.ProduceHeatmapSeries(hopts), nil
}

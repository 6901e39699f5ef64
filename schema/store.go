// Package schema declares the store adapter interfaces, object kinds and plotting payloads
// shared by every binbridge package.
package schema

// Scope is a node of a hierarchical object store. Names are unique within a
// scope; the listing order is whatever the store considers native.
type Scope interface {
	// Names returns every name in the scope.
	Names() []string

	// Contains reports whether name is listed in the scope.
	Contains(name string) bool

	// Kind reports what name holds, or KindOther when it is not listed.
	Kind(name string) Kind

	// Get fetches name as a tagged Object. Exactly one payload field of the
	// result is set, matching its Kind. KindOther objects carry no payload.
	Get(name string) (Object, error)

	// Subscope descends one level into a nested scope.
	Subscope(name string) (Scope, error)
}

// Object is the tagged union a store hands back for a single name.
type Object struct {
	Name   string
	Kind   Kind
	Hist1D Hist1D
	Hist2D Hist2D
	Scope  Scope
}

// Bin1D is the per-bin view of a one-dimensional binned object.
type Bin1D struct {
	Center    float64
	Value     float64
	ErrLow    float64
	ErrHigh   float64
	HalfWidth float64
}

// Hist1D is a one-dimensional binned object owned by a store.
type Hist1D interface {
	// Len is the number of bins.
	Len() int

	// Bin returns bin i, 0 <= i < Len().
	Bin(i int) Bin1D

	// Clone returns an independent copy identified by id.
	Clone(id string) Hist1D

	// Rebin merges factor adjacent bins in place.
	Rebin(factor int) error
}

// Hist2D is a two-dimensional binned object owned by a store.
type Hist2D interface {
	// XEdges returns the bin edges of the x axis (bins + 1 values).
	XEdges() []float64

	// YEdges returns the bin edges of the y axis (bins + 1 values).
	YEdges() []float64

	// Content returns the value of cell (ix, iy).
	Content(ix, iy int) float64

	// Error returns the uncertainty of cell (ix, iy).
	Error(ix, iy int) float64

	// Clone returns an independent copy identified by id.
	Clone(id string) Hist2D

	// RebinX merges factor adjacent x bins in place.
	RebinX(factor int) error

	// RebinY merges factor adjacent y bins in place.
	RebinY(factor int) error
}

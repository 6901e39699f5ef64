package binstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/huangsam/binbridge/core/algo"
	"github.com/huangsam/binbridge/schema"
	"github.com/ulikunitz/xz"
)

// xzMagic is the header every xz stream starts with.
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// ErrInvalidEntry is returned when a document entry is malformed.
var ErrInvalidEntry = errors.New("invalid entry")

// LoadDocument reads a document from path. xz-compressed files are detected
// by their header, whatever their extension.
func LoadDocument(path string) (*schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %q: %w", path, err)
	}
	return doc, nil
}

// DecodeDocument reads a plain or xz-compressed JSON document from r.
func DecodeDocument(r io.Reader) (*schema.Document, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	var src io.Reader = br
	if bytes.Equal(head, xzMagic) {
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
		src = xr
	}
	var doc schema.Document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return nil, err
	}
	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocument writes doc to path, compressing with xz when path ends in .xz.
func SaveDocument(path string, doc *schema.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create document %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return EncodeDocument(f, doc, strings.HasSuffix(path, ".xz"))
}

// EncodeDocument writes doc as JSON to w, optionally xz-compressed.
func EncodeDocument(w io.Writer, doc *schema.Document, compress bool) error {
	if !compress {
		return json.NewEncoder(w).Encode(doc)
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("xz: %w", err)
	}
	if err := json.NewEncoder(xw).Encode(doc); err != nil {
		_ = xw.Close()
		return err
	}
	return xw.Close()
}

// ValidateDocument checks every entry of the document tree.
func ValidateDocument(doc *schema.Document) error {
	return validateEntries(doc.Entries, nil)
}

func validateEntries(entries []schema.Entry, path []string) error {
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return fmt.Errorf("%s: %w", strings.Join(append(path, e.Name), "/"), err)
		}
		if schema.ParseKind(e.Kind) == schema.KindScope {
			if err := validateEntries(e.Children, append(path, e.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEntry(e schema.Entry) error {
	if e.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	}
	switch schema.ParseKind(e.Kind) {
	case schema.KindOneDimensional:
		return validate1D(e)
	case schema.KindTwoDimensional:
		return validate2D(e)
	}
	return nil
}

func validate1D(e schema.Entry) error {
	n := len(e.Values)
	if err := validateEdges("edges", e.Edges, n); err != nil {
		return err
	}
	for label, errs := range map[string][]float64{
		"errors":      e.Errors,
		"errors_low":  e.ErrorsLow,
		"errors_high": e.ErrorsHigh,
	} {
		if errs != nil && len(errs) != n {
			return fmt.Errorf("%w: %s has %d values for %d bins", ErrInvalidEntry, label, len(errs), n)
		}
	}
	if (e.ErrorsLow == nil) != (e.ErrorsHigh == nil) {
		return fmt.Errorf("%w: errors_low and errors_high must be given together", ErrInvalidEntry)
	}
	return nil
}

func validate2D(e schema.Entry) error {
	rows := len(e.Cells)
	if err := validateEdges("y_edges", e.YEdges, rows); err != nil {
		return err
	}
	cols := 0
	if len(e.XEdges) > 0 {
		cols = len(e.XEdges) - 1
	}
	if err := validateEdges("x_edges", e.XEdges, cols); err != nil {
		return err
	}
	for iy, row := range e.Cells {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidEntry, iy, len(row), cols)
		}
	}
	if e.CellErrors != nil {
		if len(e.CellErrors) != rows {
			return fmt.Errorf("%w: cell_errors has %d rows, want %d", ErrInvalidEntry, len(e.CellErrors), rows)
		}
		for iy, row := range e.CellErrors {
			if len(row) != cols {
				return fmt.Errorf("%w: cell_errors row %d has %d cells, want %d", ErrInvalidEntry, iy, len(row), cols)
			}
		}
	}
	return nil
}

func validateEdges(label string, edges []float64, bins int) error {
	if bins == 0 && len(edges) <= 1 {
		return nil
	}
	if len(edges) != bins+1 {
		return fmt.Errorf("%w: %s has %d values for %d bins", ErrInvalidEntry, label, len(edges), bins)
	}
	if !algo.StrictlyIncreasing(edges) {
		return fmt.Errorf("%w: %s must be strictly increasing", ErrInvalidEntry, label)
	}
	return nil
}

// poisson returns sqrt(|v|) for every value.
func poisson(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Sqrt(math.Abs(v))
	}
	return out
}

// newHist1D builds an owned histogram from a validated 1d entry.
func newHist1D(e schema.Entry) *Hist1D {
	low, high := e.ErrorsLow, e.ErrorsHigh
	switch {
	case low != nil:
	case e.Errors != nil:
		low, high = e.Errors, e.Errors
	default:
		low = poisson(e.Values)
		high = low
	}
	return &Hist1D{
		edges:   append([]float64(nil), e.Edges...),
		values:  append([]float64(nil), e.Values...),
		errLow:  append([]float64(nil), low...),
		errHigh: append([]float64(nil), high...),
	}
}

// newHist2D builds an owned histogram from a validated 2d entry.
func newHist2D(e schema.Entry) *Hist2D {
	errs := e.CellErrors
	if errs == nil {
		errs = make([][]float64, len(e.Cells))
		for iy, row := range e.Cells {
			errs[iy] = poisson(row)
		}
	}
	return &Hist2D{
		xEdges: append([]float64(nil), e.XEdges...),
		yEdges: append([]float64(nil), e.YEdges...),
		cells:  algo.CopyMatrix(e.Cells),
		errs:   algo.CopyMatrix(errs),
	}
}

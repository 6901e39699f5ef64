package schema

// Custom string types for type safety.
type (
	// Kind identifies what a named object in a scope holds.
	Kind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the backend serving the object store.
	DatabaseBackend string

	// Axis names one axis of a two-dimensional dataset.
	Axis string
)

// All object kinds a scope can report.
const (
	KindOneDimensional Kind = "1d"
	KindTwoDimensional Kind = "2d"
	KindScope          Kind = "scope"
	KindOther          Kind = "other"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
	SVGOut     OutputMode = "svg"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	FileBackend       DatabaseBackend = "file"
)

// Axes of a two-dimensional dataset.
const (
	XAxis Axis = "x"
	YAxis Axis = "y"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
	SVGOut:     {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	FileBackend:       {},
}

// ParseKind maps a stored kind tag onto a Kind. Unknown tags map to KindOther.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindOneDimensional, KindTwoDimensional, KindScope:
		return Kind(s)
	default:
		return KindOther
	}
}

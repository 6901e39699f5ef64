package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/binbridge/schema"
)

// Color variables for console output.
var (
	OneDimColor = color.New(color.FgCyan)                // OneDimColor marks one-dimensional datasets.
	TwoDimColor = color.New(color.FgMagenta)             // TwoDimColor marks two-dimensional datasets.
	ScopeColor  = color.New(color.FgBlue, color.Bold)    // ScopeColor marks nested scopes.
	OtherColor  = color.New(color.FgYellow, color.Faint) // OtherColor marks objects that cannot be plotted.
)

// GetPlainKindLabel returns a plain text label for an object kind.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainKindLabel(kind schema.Kind) string {
	switch kind {
	case schema.KindOneDimensional:
		return "1D"
	case schema.KindTwoDimensional:
		return "2D"
	case schema.KindScope:
		return "Scope"
	default:
		return "Other"
	}
}

// GetColorKindLabel returns a colored label for console output (table).
func GetColorKindLabel(kind schema.Kind) string {
	text := GetPlainKindLabel(kind)

	switch kind {
	case schema.KindOneDimensional:
		return OneDimColor.Sprint(text)
	case schema.KindTwoDimensional:
		return TwoDimColor.Sprint(text)
	case schema.KindScope:
		return ScopeColor.Sprint(text)
	default:
		return OtherColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for object storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".binbridge.db"
	}
	return filepath.Join(homeDir, ".binbridge.db")
}

// TruncateName truncates an object name to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and some content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

package cmd

import (
	"github.com/huangsam/binbridge/core"
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor adapts a core executor to a cobra Run function.
func runExecutor(executor core.ExecutorFunc, failure string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := executor(rootCtx, cfg, source); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// listCmd lists the objects of a scope.
var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List the named objects of a scope with their kinds.",
	Long: `List every name in the selected scope together with what it holds:
1D histograms, 2D histograms, nested scopes, or other objects that cannot be plotted.

An optional glob pattern keeps only the matching names. Patterns support
'*', '?', character classes and '{a,b}' alternatives.

Examples:
  # List the top level of a JSON snapshot
  binbridge list --store-backend file --source results.json

  # List the jet histograms of a nested scope
  binbridge list 'jet*' --scope run1/jets`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteList, "Cannot list scope"),
}

// pointsCmd prints a 1D histogram as points with error bars.
var pointsCmd = &cobra.Command{
	Use:   "points NAME",
	Short: "Print a 1D histogram as points with asymmetric error bars.",
	Long: `Extract a 1D histogram and print its bin centers, values and errors.

The symmetric error of each bin is the larger of its low and high errors.

Examples:
  # Merge pairs of bins and normalize to a luminosity factor
  binbridge points pt --rebin 2 --scale 0.1

  # Scale to unit total, or to the total of another histogram
  binbridge points pt --norm
  binbridge points pt --norm-to pt_all

  # Convert the x axis from MeV to GeV
  binbridge points pt --xscale 0.001 --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecutePoints, "Cannot extract points"),
}

// bandCmd prints a 1D histogram as a line with its error band.
var bandCmd = &cobra.Command{
	Use:   "band NAME",
	Short: "Print a 1D histogram as a central line with a band of one error either side.",
	Long: `Extract a 1D histogram and print the central values with the lower and upper
edges of a band spanning one symmetric error.

Examples:
  binbridge band pt --rebin 2
  binbridge band pt --output svg --output-file pt.svg`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteBand, "Cannot extract band"),
}

// barCmd prints a 1D histogram as bars.
var barCmd = &cobra.Command{
	Use:   "bar NAME",
	Short: "Print a 1D histogram as bar positions, heights and widths.",
	Long: `Extract a 1D histogram and print one bar per bin.

Bars are centered on the bin centers plus --shift and span --width-factor
of the bin width, which allows several histograms to be drawn side by side.

Examples:
  binbridge bar pt --width-factor 0.4 --shift -2.5
  binbridge bar pt --output xlsx --output-file pt.xlsx`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteBar, "Cannot extract bars"),
}

// heatmapCmd prints a 2D histogram as a heatmap.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap NAME",
	Short: "Print a 2D histogram as bin edges and a value matrix.",
	Long: `Extract a 2D histogram and print one row per cell.

Zero cells are masked unless --kill-zeros=no is given. Masked cells print as
'-' in tables, empty fields in CSV and null in JSON and Parquet.

Examples:
  binbridge heatmap eta_phi --rebinx 2 --rebiny 2
  binbridge heatmap eta_phi --transpose --output parquet --output-file map.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteHeatmap, "Cannot extract heatmap"),
}

// projectCmd prints the projection of a 2D histogram.
var projectCmd = &cobra.Command{
	Use:   "project NAME",
	Short: "Project a 2D histogram onto one axis and print it as points.",
	Long: `Sum a 2D histogram over a range of bins of one axis and print the result
as points along the other axis. Errors are combined in quadrature.

Bins are 0-based and inclusive; --last-bin -1 means the final bin.

Examples:
  # Project onto x using every y bin
  binbridge project eta_phi --axis x

  # Project onto y using the first three x bins
  binbridge project eta_phi --axis y --first-bin 0 --last-bin 2`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteProject, "Cannot project"),
}

// describeCmd prints summary statistics of a histogram.
var describeCmd = &cobra.Command{
	Use:   "describe NAME",
	Short: "Print summary statistics of a 1D or 2D histogram.",
	Long: `Print the bin counts, total, weighted mean, standard deviation, x range and
suggested major axis ticks of a histogram. For 2D histograms the statistics
are taken along x.

Examples:
  binbridge describe pt
  binbridge describe eta_phi --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteDescribe, "Cannot describe"),
}

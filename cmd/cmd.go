// Package cmd defines the command-line interface for binbridge.
package cmd

import (
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(bandCmd)
	rootCmd.AddCommand(barCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or file")
	rootCmd.PersistentFlags().String("store-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("source", "", "Document to read with the file backend (.json or .json.xz)")
	rootCmd.PersistentFlags().String("scope", "", "Slash separated scope to read from (e.g., run1/jets)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or xlsx or svg")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Series flags are bound at run time by sharedSetup
	for _, c := range []*cobra.Command{pointsCmd, bandCmd, barCmd, projectCmd} {
		addSeriesFlags(c.Flags())
	}
	pointsCmd.Flags().Float64("xscale", 1, "Multiply bin centers by this factor")
	bandCmd.Flags().Float64("xscale", 1, "Multiply bin centers by this factor")
	projectCmd.Flags().Float64("xscale", 1, "Multiply bin centers by this factor")
	barCmd.Flags().Float64("shift", 0, "Offset added to every bar position")
	barCmd.Flags().Float64("width-factor", 1, "Fraction of the bin width each bar covers")

	for _, c := range []*cobra.Command{heatmapCmd, projectCmd} {
		c.Flags().Int("rebinx", 1, "Merge this many adjacent x bins")
		c.Flags().Int("rebiny", 1, "Merge this many adjacent y bins")
	}
	heatmapCmd.Flags().Float64("xscale", 1, "Multiply x edges by this factor")
	heatmapCmd.Flags().Float64("yscale", 1, "Multiply y edges by this factor")
	heatmapCmd.Flags().String("kill-zeros", "yes", "Mask cells whose value is zero (yes/no)")
	heatmapCmd.Flags().Bool("transpose", false, "Swap the x and y axes")

	projectCmd.Flags().String("axis", string(schema.XAxis), "Axis to keep: x or y")
	projectCmd.Flags().Int("first-bin", 0, "First summed bin of the other axis (0-based)")
	projectCmd.Flags().Int("last-bin", -1, "Last summed bin of the other axis, inclusive (-1 = last bin)")

	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}

// addSeriesFlags registers the rebin, scale and normalization flags shared by the 1D commands.
func addSeriesFlags(flags *pflag.FlagSet) {
	flags.Int("rebin", 1, "Merge this many adjacent bins")
	flags.Float64("scale", 1, "Multiply values and errors by this factor")
	flags.Bool("norm", false, "Scale the result to unit total")
	flags.String("norm-to", "", "Scale the result to the total of another 1D object in the scope")
}

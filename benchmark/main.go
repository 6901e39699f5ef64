// Package main provides a performance benchmarking tool for the binbridge CLI.
// It generates synthetic documents of increasing size, imports them into a
// SQLite store and times the extraction commands against both the store and
// the plain file backend. The first successful run of each command is treated
// as cold and the rest are averaged as warm. Results are written as CSV.
//
// Prerequisites:
// - binbridge binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory that receives the generated documents and databases
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/binbridge/internal/binstore"
	"github.com/huangsam/binbridge/schema"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Backend  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Datasets map[string]int // name -> number of bins per axis
	Order    []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    4,
		Datasets: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  4000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the binbridge binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("binbridge"); err != nil {
		return fmt.Errorf("binbridge binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// syntheticDocument builds a document with a gaussian 1d histogram and a
// separable 2d histogram of the given size.
func syntheticDocument(bins int) *schema.Document {
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = float64(i)
	}
	center, width := float64(bins)/2, float64(bins)/8
	gauss := func(i int) float64 {
		d := (float64(i) + 0.5 - center) / width
		return math.Round(1000 * math.Exp(-d*d/2))
	}

	values := make([]float64, bins)
	for i := range values {
		values[i] = gauss(i)
	}

	side := min(bins, 500)
	cells := make([][]float64, side)
	for iy := range cells {
		cells[iy] = make([]float64, side)
		for ix := range cells[iy] {
			cells[iy][ix] = values[ix%bins] * values[iy%bins] / 1000
		}
	}

	return &schema.Document{Entries: []schema.Entry{
		{Name: "mass", Kind: "1d", Edges: edges, Values: values},
		{Name: "run1", Kind: "scope", Children: []schema.Entry{
			{Name: "map", Kind: "2d", XEdges: edges[:side+1], YEdges: edges[:side+1], Cells: cells},
		}},
	}}
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs\n",
		len(config.Order), config.Timeout, config.Runs)

	for _, name := range config.Order {
		fmt.Printf("Benchmarking %s\n", name)

		docPath := filepath.Join(config.WorkDir, name+".json.xz")
		if err := binstore.SaveDocument(docPath, syntheticDocument(config.Datasets[name])); err != nil {
			fmt.Printf("  Failed to write %s: %v\n", docPath, err)
			continue
		}

		dbPath := filepath.Join(config.WorkDir, name+".db")
		_ = os.Remove(dbPath)
		store := []string{"--store-backend", "sqlite", "--store-connect", dbPath}
		file := []string{"--store-backend", "file", "--source", docPath}

		results = append(results,
			runBenchmarkSuite(config, name, "sqlite", "import", append([]string{"store", "import", docPath}, store...)),
			runBenchmarkSuite(config, name, "file", "points", append([]string{"points", "mass", "--rebin", "2", "--output", "json"}, file...)),
			runBenchmarkSuite(config, name, "sqlite", "points", append([]string{"points", "mass", "--rebin", "2", "--output", "json"}, store...)),
			runBenchmarkSuite(config, name, "file", "heatmap", append([]string{"heatmap", "map", "--scope", "run1", "--output", "csv"}, file...)),
			runBenchmarkSuite(config, name, "sqlite", "heatmap", append([]string{"heatmap", "map", "--scope", "run1", "--output", "csv"}, store...)),
			runBenchmarkSuite(config, name, "sqlite", "project", append([]string{"project", "map", "--scope", "run1", "--axis", "y", "--output", "json"}, store...)),
		)
	}

	return results
}

// runBenchmarkSuite times a command and reduces the runs to cold and warm figures
func runBenchmarkSuite(config BenchmarkConfig, dataset, backend, command string, args []string) BenchmarkResult {
	fmt.Printf("  %s on %s (%d runs)\n", command, backend, config.Runs)

	times := runBenchmark(config, args)
	coldTime, warmAvg := "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("    Cold time: %s, Warm average: %s\n", coldTime, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Backend:  backend,
		Command:  command,
		ColdTime: coldTime,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a binbridge command multiple times and returns the successful run times
func runBenchmark(config BenchmarkConfig, args []string) []float64 {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("binbridge", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			} else {
				fmt.Printf("    Run %d failed: %v\n%s", run, cmdErr, strings.TrimSpace(string(output)))
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/binbridge_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "backend", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Dataset, r.Backend, r.Command, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"import", "points", "heatmap", "project"} {
		fmt.Printf("%s:\n", command)
		for _, r := range results {
			if r.Command == command {
				fmt.Printf("  %-8s %-7s: Cold: %s, Warm: %s\n", r.Dataset, r.Backend, r.ColdTime, r.WarmTime)
			}
		}
	}
}

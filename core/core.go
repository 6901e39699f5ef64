// Package core extracts binned datasets from a store and shapes them into
// plotting inputs.
package core

import (
	"context"

	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/internal/outwriter"
)

// ExecutorFunc defines the function signature for the commands that read a Source.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.Source) error

// ExecuteList prints the names of the configured scope.
func ExecuteList(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	listing, err := GetListingResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteListing(listing, cfg)
}

// ExecutePoints prints a 1D dataset as points with error bars.
func ExecutePoints(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	points, err := GetPointsResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePoints(points, cfg)
}

// ExecuteBand prints a 1D dataset as a line with its error band.
func ExecuteBand(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	band, err := GetBandResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBand(band, cfg)
}

// ExecuteBar prints a 1D dataset as bars.
func ExecuteBar(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	bars, err := GetBarResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBar(bars, cfg)
}

// ExecuteHeatmap prints a 2D dataset as a heatmap.
func ExecuteHeatmap(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	heatmap, err := GetHeatmapResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHeatmap(heatmap, cfg)
}

// ExecuteProject prints the projection of a 2D dataset onto one axis.
func ExecuteProject(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	points, err := GetProjectionResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePoints(points, cfg)
}

// ExecuteDescribe prints summary statistics of a dataset.
func ExecuteDescribe(_ context.Context, cfg *contract.Config, src contract.Source) error {
	c, err := OpenContainer(src, cfg.Scope)
	if err != nil {
		return err
	}
	summary, err := GetSummaryResult(c, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummary(summary, cfg)
}

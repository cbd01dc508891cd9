package shifter

import (
	"fmt"
	"time"

	"github.com/fopina/fixshift/internal/fixture"
	"github.com/fopina/fixshift/internal/logger"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Options configures a single shift run.
type Options struct {
	FixturePath string
	OutputPath  string
	// Target is the instant the most recent timestamp should land on.
	// Zero means "now at planning time".
	Target time.Time
	// DryRun plans and applies in memory but writes no output file.
	DryRun bool
}

// Result summarizes a completed run for reporting.
type Result struct {
	NoChange     bool          `json:"no_change" yaml:"no_change"`
	Updated      int           `json:"updated" yaml:"updated"`
	Delta        time.Duration `json:"-" yaml:"-"`
	DaysMoved    float64       `json:"days_moved" yaml:"days_moved"`
	LatestBefore string        `json:"latest_before,omitempty" yaml:"latest_before,omitempty"`
	LatestAfter  string        `json:"latest_after,omitempty" yaml:"latest_after,omitempty"`
	OutputPath   string        `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	DryRun       bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	ElapsedMS    int64         `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Run executes the whole pipeline: load and validate the fixture, plan the
// shift, apply it in place, and write the output. A fixture with no
// recognizable timestamps is a valid no-change outcome: nothing is written
// and the result says so.
func Run(opts Options, log logger.Logger) (*Result, error) {
	started := timeNow()

	doc, err := fixture.Load(opts.FixturePath)
	if err != nil {
		return nil, err
	}
	log.WithField("records", len(doc)).Debug("fixture loaded")

	target := opts.Target
	if target.IsZero() {
		target = timeNow().UTC()
	}

	plan := BuildPlan(doc.FieldMaps(), target)
	if plan == nil {
		return &Result{
			NoChange:  true,
			ElapsedMS: timeNow().Sub(started).Milliseconds(),
		}, nil
	}
	log.WithField("found", len(plan.Found)).Debug("timestamps collected")

	latestBefore := plan.Latest.Render()
	updated := plan.Apply()

	if !opts.DryRun {
		if err := doc.Write(opts.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
	}

	return &Result{
		Updated:      updated,
		Delta:        plan.Delta,
		DaysMoved:    plan.Delta.Seconds() / 86400,
		LatestBefore: latestBefore,
		LatestAfter:  plan.Latest.Shifted(plan.Delta).Render(),
		OutputPath:   opts.OutputPath,
		DryRun:       opts.DryRun,
		ElapsedMS:    timeNow().Sub(started).Milliseconds(),
	}, nil
}

package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Service is the canonical interface for generating the site configuration.
type Service interface {
	// Run executes load -> validate -> (lint) -> write.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required for one generation.
type Request struct {
	// Config is the loaded sitecfg configuration.
	Config *config.Config

	// OutputPath overrides the configured output path when non-empty.
	OutputPath string

	// Format overrides the configured output format when non-empty.
	Format config.OutputFormat

	// DryRun builds and validates without writing output.
	DryRun bool

	// CheckPages resolves referenced pages against the docs dir and records
	// the number of missing pages.
	CheckPages bool
}

// Result contains the outcome of a generation.
type Result struct {
	Status     Status
	OutputPath string
	Format     config.OutputFormat

	// Site is the generated configuration (nil on failure).
	Site *site.Config

	// MissingPages counts referenced pages absent from the docs dir (CheckPages only).
	MissingPages int

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Status represents the outcome of a generation.
type Status string

const (
	// StatusWritten indicates the output file was created or replaced.
	StatusWritten Status = "written"

	// StatusUnchanged indicates the output already held identical content.
	StatusUnchanged Status = "unchanged"

	// StatusDryRun indicates the configuration was built but not written.
	StatusDryRun Status = "dry_run"

	// StatusFailed indicates the generation encountered an error.
	StatusFailed Status = "failed"

	// StatusCanceled indicates the context was canceled.
	StatusCanceled Status = "canceled"
)

// IsSuccess returns true if the generation completed.
func (s Status) IsSuccess() bool {
	return s == StatusWritten || s == StatusUnchanged || s == StatusDryRun
}

package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/emit"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/lint"
	"git.home.luguber.info/inful/sitecfg/internal/loader"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/observability"
)

// DefaultService implements Service.
type DefaultService struct {
	loader   *loader.Loader
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewService creates a DefaultService with a default loader and no metrics.
func NewService() *DefaultService {
	return &DefaultService{
		loader:   loader.New(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithLoader replaces the site loader (for testing).
func (s *DefaultService) WithLoader(l *loader.Loader) *DefaultService {
	s.loader = l
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithLogger sets the logger.
func (s *DefaultService) WithLogger(l *slog.Logger) *DefaultService {
	s.logger = l
	return s
}

// Run executes the generation pipeline.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{StartTime: time.Now()}
	ctx = observability.WithGenerationID(ctx, result.StartTime.Format("20060102-150405.000"))

	if req.Config == nil {
		return s.fail(ctx, result, ferrors.ConfigError("config required").Build())
	}

	result.OutputPath = req.OutputPath
	if result.OutputPath == "" {
		result.OutputPath = req.Config.OutputPath()
	}
	result.Format = req.Format
	if result.Format == "" {
		if req.OutputPath != "" {
			result.Format = config.FormatForPath(req.OutputPath)
		} else {
			result.Format = req.Config.Output.Format
		}
	}

	ctx = observability.WithStage(ctx, "load")
	cfg, err := s.loader.Build(ctx, req.Config)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok && ce.IsCategory(ferrors.CategoryValidation) {
			s.recorder.SetValidationIssues(len(ce.Details()))
		}
		return s.fail(ctx, result, err)
	}
	s.recorder.SetValidationIssues(0)
	result.Site = cfg

	if req.CheckPages {
		ctx = observability.WithStage(ctx, "lint")
		report, err := lint.Check(cfg, req.Config.DocsPath())
		if err != nil {
			observability.WarnContext(ctx, s.logger, "Page check skipped", logfields.Path(req.Config.DocsPath()), logfields.Error(err))
		} else {
			result.MissingPages = report.MissingPages()
			s.recorder.SetLintMissingPages(result.MissingPages)
			for _, issue := range report.Issues {
				if issue.Rule == lint.RuleMissingPage {
					observability.WarnContext(ctx, s.logger, "Referenced page not found", logfields.Page(issue.Route))
				}
			}
		}
	}

	if req.DryRun {
		return s.finish(ctx, result, StatusDryRun), nil
	}

	ctx = observability.WithStage(ctx, "write")
	if err := ctx.Err(); err != nil {
		return s.fail(ctx, result, err)
	}
	changed, err := emit.WriteFile(result.OutputPath, cfg, result.Format)
	if err != nil {
		return s.fail(ctx, result, err)
	}
	if !changed {
		return s.finish(ctx, result, StatusUnchanged), nil
	}
	return s.finish(ctx, result, StatusWritten), nil
}

func (s *DefaultService) finish(ctx context.Context, result *Result, status Status) *Result {
	result.Status = status
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	switch status {
	case StatusWritten:
		s.recorder.IncGeneration(metrics.OutcomeWritten)
	case StatusUnchanged:
		s.recorder.IncGeneration(metrics.OutcomeUnchanged)
	}
	s.recorder.ObserveGenerationDuration(result.Duration)

	observability.InfoContext(ctx, s.logger, "Site configuration generated",
		logfields.Outcome(string(status)),
		logfields.Path(result.OutputPath),
		logfields.Format(string(result.Format)),
		logfields.Duration(result.Duration))
	return result
}

func (s *DefaultService) fail(ctx context.Context, result *Result, err error) (*Result, error) {
	status := StatusFailed
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = StatusCanceled
	}
	result.Site = nil
	result.Status = status
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	if status == StatusCanceled {
		s.recorder.IncGeneration(metrics.OutcomeCanceled)
	} else {
		s.recorder.IncGeneration(metrics.OutcomeFailed)
		s.recorder.ObserveGenerationDuration(result.Duration)
	}
	observability.DebugContext(ctx, s.logger, "Site configuration generation stopped", logfields.Outcome(string(status)), logfields.Error(err))
	return result, err
}

package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitecfg/internal/build"
	"git.home.luguber.info/inful/sitecfg/internal/loader"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce   time.Duration `help:"Quiet period before regenerating (overrides watch.debounce)"`
	Metrics    bool          `help:"Serve Prometheus metrics (overrides monitoring.metrics.enabled)"`
	CheckPages bool          `name:"check-pages" help:"Warn about nav and sidebar pages missing from docs_dir"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	metricsCfg := cfg.Monitoring.Metrics
	if w.Metrics || metricsCfg.Enabled {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		go func() {
			if err := metrics.Serve(ctx, metricsCfg.Address, metricsCfg.Path, reg); err != nil {
				g.Logger.Error("Metrics endpoint stopped", logfields.Error(err))
			}
		}()
	}

	svc := build.NewService().
		WithLoader(loader.New(loader.WithLogger(g.Logger))).
		WithRecorder(recorder).
		WithLogger(g.Logger)
	watcher, err := watch.New(root.Config, svc,
		watch.WithLogger(g.Logger),
		watch.WithDebounce(w.Debounce),
		watch.WithRequest(build.Request{CheckPages: w.CheckPages}),
	)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

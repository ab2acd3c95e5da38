package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/stadium-matchmap/internal/config"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

// Runtime owns the process-wide telemetry started for the API: the Uptrace
// exporter, the Pyroscope profiler and the pprof listener.
type Runtime struct {
	logger *logging.Logger
	stops  []stopFunc
}

type stopFunc struct {
	name string
	stop func(context.Context) error
}

// Start brings up every enabled component. If one fails, the ones already
// running are stopped before the error is returned.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", start: startUptrace},
		{name: "pyroscope", start: startPyroscope},
		{name: "pprof", start: startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = rt.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			rt.stops = append(rt.stops, stopFunc{name: step.name, stop: stop})
		}
	}
	return rt, nil
}

// Shutdown stops components in reverse start order. Tracing goes last so the
// spans of the other shutdowns are still exported.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	for i := len(r.stops) - 1; i >= 0; i-- {
		s := r.stops[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
			continue
		}
		r.logger.Debug("telemetry stopped", "component", s.name)
	}
	r.stops = nil
	return errors.Join(errs...)
}

// Components lists what is running, in start order.
func (r *Runtime) Components() []string {
	out := make([]string, 0, len(r.stops))
	for _, s := range r.stops {
		out = append(out, s.name)
	}
	return out
}

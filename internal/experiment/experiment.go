package experiment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/decsim/internal/analysis"
	"github.com/san-kum/decsim/internal/dynamo"
	"github.com/san-kum/decsim/internal/metrics"
)

type Config struct {
	Problem string
	Methods []string
	Run     dynamo.Config
}

// Result is one method's run against the reference trajectory.
type Result struct {
	Problem     string
	Method      string
	Approx      dynamo.Trajectory
	Exact       dynamo.Trajectory
	Deviations  []analysis.Deviation
	Summary     analysis.Summary
	Evaluations int
	Elapsed     time.Duration
}

type Experiment struct {
	cfg      Config
	registry *Registry
	logger   *zap.Logger
}

func New(cfg Config, registry *Registry, logger *zap.Logger) *Experiment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Run integrates the problem with every configured method concurrently,
// samples the exact solution once on the same grid and reports each
// method's deviation. Results follow the order of cfg.Methods.
func (e *Experiment) Run(ctx context.Context) ([]*Result, error) {
	if len(e.cfg.Methods) == 0 {
		return nil, fmt.Errorf("experiment has no methods")
	}

	reference, err := e.registry.GetProblem(e.cfg.Problem)
	if err != nil {
		return nil, err
	}

	counters := make([]*metrics.Evaluations, len(e.cfg.Methods))
	members := make([]dynamo.Member, len(e.cfg.Methods))
	for i, name := range e.cfg.Methods {
		integ, err := e.registry.GetMethod(name)
		if err != nil {
			return nil, err
		}
		problem, err := e.registry.GetProblem(e.cfg.Problem)
		if err != nil {
			return nil, err
		}
		counters[i] = metrics.NewEvaluations(problem)
		members[i] = dynamo.Member{Name: name, Integrator: integ, System: counters[i]}
	}

	e.logger.Info("starting run",
		zap.String("problem", e.cfg.Problem),
		zap.Strings("methods", e.cfg.Methods),
		zap.String("x0", e.cfg.Run.X0.String()),
		zap.String("y0", e.cfg.Run.Y0.String()),
		zap.String("h", e.cfg.Run.H.String()),
		zap.Int("steps", e.cfg.Run.Steps),
		zap.Uint32("precision", e.cfg.Run.Math.Precision),
	)

	start := time.Now()
	trajectories, err := dynamo.NewEnsemble(members...).Run(ctx, e.cfg.Run)
	if err != nil {
		e.logger.Error("integration failed", zap.String("problem", e.cfg.Problem), zap.Error(err))
		return nil, err
	}
	elapsed := time.Since(start)

	exact, err := dynamo.Sample(ctx, reference, e.cfg.Run)
	if err != nil {
		e.logger.Error("exact sampling failed", zap.String("problem", e.cfg.Problem), zap.Error(err))
		return nil, err
	}

	results := make([]*Result, len(members))
	for i, traj := range trajectories {
		devs, err := analysis.Compare(traj, exact)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", members[i].Name, err)
		}

		results[i] = &Result{
			Problem:     e.cfg.Problem,
			Method:      members[i].Name,
			Approx:      traj,
			Exact:       exact,
			Deviations:  devs,
			Summary:     analysis.Summarize(devs),
			Evaluations: counters[i].Value(),
			Elapsed:     elapsed,
		}

		e.logger.Info("run completed",
			zap.String("method", members[i].Name),
			zap.Int("points", traj.Len()),
			zap.Int(counters[i].Name(), counters[i].Value()),
			zap.String("final_deviation", results[i].Summary.Final.String()),
			zap.Duration("elapsed", elapsed),
		)
	}

	return results, nil
}

package dynamo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Member is one run inside an Ensemble. System must not be shared with
// any other member.
type Member struct {
	Name       string
	Integrator Integrator
	System     System
}

// Ensemble integrates the same configuration with several independent
// members concurrently.
type Ensemble struct {
	members []Member
}

func NewEnsemble(members ...Member) *Ensemble {
	return &Ensemble{members: members}
}

func (e *Ensemble) Len() int { return len(e.members) }

// Run returns one trajectory per member, in member order. Each member gets
// its own copy of cfg's decimal context. The first failure cancels the
// remaining members.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]Trajectory, len(e.members))
	g, gctx := errgroup.WithContext(ctx)

	for i, m := range e.members {
		own := cfg.Clone()
		g.Go(func() error {
			traj, err := m.Integrator.Integrate(gctx, m.System, own)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name, err)
			}
			results[i] = traj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

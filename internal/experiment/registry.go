package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/decsim/internal/dynamo"
	"github.com/san-kum/decsim/internal/integrators"
	"github.com/san-kum/decsim/internal/models"
)

// Registry resolves problem and method names. Every lookup builds a fresh
// instance so concurrent runs never share one.
type Registry struct {
	problems map[string]func() dynamo.Problem
	methods  map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		problems: make(map[string]func() dynamo.Problem),
		methods:  make(map[string]func() dynamo.Integrator),
	}

	r.problems["growth"] = func() dynamo.Problem { return models.NewExponential(2) }
	r.problems["decay"] = func() dynamo.Problem { return models.NewExponential(-1) }
	r.problems["gaussian"] = func() dynamo.Problem { return models.NewGaussian(2) }

	r.methods["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.methods["ab4"] = func() dynamo.Integrator { return integrators.NewAdamsBashforth4() }

	return r
}

func (r *Registry) GetProblem(name string) (dynamo.Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s (available: %v)", name, r.ListProblems())
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (dynamo.Integrator, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s (available: %v)", name, r.ListMethods())
	}
	return fn(), nil
}

func (r *Registry) ListProblems() []string {
	return sortedKeys(r.problems)
}

func (r *Registry) ListMethods() []string {
	return sortedKeys(r.methods)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

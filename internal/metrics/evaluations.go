package metrics

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

// Evaluations counts calls to the wrapped System's Derive. It is not safe
// for concurrent use; give each run its own.
type Evaluations struct {
	sys   dynamo.System
	name  string
	count int
}

func NewEvaluations(sys dynamo.System) *Evaluations {
	return &Evaluations{
		sys:  sys,
		name: "derivative_evals",
	}
}

func (e *Evaluations) Name() string {
	return e.name
}

func (e *Evaluations) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	e.count++
	return e.sys.Derive(math, x, y)
}

func (e *Evaluations) Value() int {
	return e.count
}

func (e *Evaluations) Reset() {
	e.count = 0
}

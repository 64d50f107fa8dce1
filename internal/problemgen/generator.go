package problemgen

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/pawsitive/mathcat/internal/standards"
)

// ErrNoGenerators is returned when the registry is empty.
var ErrNoGenerators = errors.New("problemgen: no generators registered")

// weakThreshold is the mastery below which a practiced standard is
// considered weak.
const weakThreshold = 80

// Generator produces problems from a registry of standard generators.
type Generator struct {
	reg   *Registry
	rnd   Rand
	llm   *LLMGenerator
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLLM enables LLM-backed generation for catalog standards that have no
// built-in generator. Only GenerateContext consults it.
func WithLLM(l *LLMGenerator) Option {
	return func(g *Generator) { g.llm = l }
}

// WithIDFunc overrides problem ID assignment.
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

// New creates a Generator. A nil registry means DefaultRegistry; a nil
// Rand means a clock-seeded one.
func New(reg *Registry, rnd Rand, opts ...Option) *Generator {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if rnd == nil {
		rnd = NewTimeRand()
	}
	g := &Generator{reg: reg, rnd: rnd, newID: uuid.NewString}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Rand returns the randomness source shared with callers that pick
// feedback lines or starter standards.
func (g *Generator) Rand() Rand { return g.rnd }

// Has reports whether standardID has a built-in generator.
func (g *Generator) Has(standardID string) bool {
	_, ok := g.reg.Lookup(standardID)
	return ok
}

// Generate returns a problem for standardID. Unknown or empty IDs fall
// back to a uniformly random registered standard.
func (g *Generator) Generate(standardID string) (*Problem, error) {
	if fn, ok := g.reg.Lookup(standardID); ok {
		return g.stamp(fn(g.rnd)), nil
	}
	return g.Random()
}

// GenerateContext behaves like Generate, except that a catalog standard
// without a built-in generator is sent to the LLM generator when one is
// configured. LLM failures fall back to a random built-in problem.
func (g *Generator) GenerateContext(ctx context.Context, standardID string, prior []string) (*Problem, error) {
	if g.Has(standardID) || g.llm == nil {
		return g.Generate(standardID)
	}
	std, err := standards.Get(standardID)
	if err != nil {
		return g.Random()
	}
	p, err := g.llm.Generate(ctx, GenerateInput{Standard: std, PriorQuestions: prior})
	if err != nil {
		return g.Random()
	}
	return g.stamp(*p), nil
}

// Random returns a problem for a uniformly random registered standard.
func (g *Generator) Random() (*Problem, error) {
	ids := g.reg.IDs()
	if len(ids) == 0 {
		return nil, ErrNoGenerators
	}
	fn, _ := g.reg.Lookup(choice(g.rnd, ids))
	return g.stamp(fn(g.rnd)), nil
}

// ForWeakArea picks a problem based on the learner's per-standard mastery:
// the weakest practiced standard if it is below 80, else a random
// unpracticed standard, else any random standard.
func (g *Generator) ForWeakArea(progress []MasteryLevel) (*Problem, error) {
	if len(progress) == 0 {
		return g.Random()
	}

	var weak []MasteryLevel
	for _, p := range progress {
		if g.Has(p.StandardID) {
			weak = append(weak, p)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Mastery < weak[j].Mastery
	})
	if len(weak) > 0 && weak[0].Mastery < weakThreshold {
		return g.Generate(weak[0].StandardID)
	}

	practiced := make(map[string]bool, len(progress))
	for _, p := range progress {
		practiced[p.StandardID] = true
	}
	var fresh []string
	for _, id := range g.reg.IDs() {
		if !practiced[id] {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) > 0 {
		return g.Generate(choice(g.rnd, fresh))
	}

	return g.Random()
}

func (g *Generator) stamp(p Problem) *Problem {
	p.ID = g.newID()
	if !slices.Contains(p.AcceptableAnswers, p.CorrectAnswer) {
		p.AcceptableAnswers = append([]string{p.CorrectAnswer}, p.AcceptableAnswers...)
	}
	return &p
}

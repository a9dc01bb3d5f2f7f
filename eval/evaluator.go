package eval

import (
	"errors"
	"strings"
	"sync"

	buildcond "github.com/buildcond/buildcond-go"
)

// Evaluator owns the parse-then-evaluate lifecycle for condition strings.
// Parsed trees are cached per condition string, so re-evaluating the same
// condition against fresh state skips the parser. The cache is safe for
// concurrent use; each Evaluate call runs its own pass with its own Context.
type Evaluator struct {
	lenient bool
	caching bool

	mu    sync.Mutex
	cache map[string]Node
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLenientInternalErrors makes internal invariant violations non-fatal so
// evaluation can continue best-effort. This exists for production triage
// only; it is unsupported for normal operation.
func WithLenientInternalErrors() Option {
	return func(e *Evaluator) {
		e.lenient = true
	}
}

// WithoutTreeCache disables reuse of parsed trees across evaluations of the
// same condition string.
func WithoutTreeCache() Option {
	return func(e *Evaluator) {
		e.caching = false
	}
}

// NewEvaluator creates an evaluator.
func NewEvaluator(options ...Option) *Evaluator {
	e := &Evaluator{
		caching: true,
		cache:   make(map[string]Node),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Evaluate parses condition and evaluates it as a boolean against state.
// An empty or blank condition participates unconditionally and is true.
//
// A malformed condition or an unexpandable reference returns an
// *buildcond.IllFormedConditionError carrying the condition text and loc;
// violated evaluator invariants return an *buildcond.InternalError unless
// the evaluator is lenient.
func (e *Evaluator) Evaluate(condition string, state buildcond.State, loc buildcond.Location) (bool, error) {
	if strings.TrimSpace(condition) == "" {
		return true, nil
	}

	root, err := e.tree(condition)
	if err != nil {
		var internal *buildcond.InternalError
		if errors.As(err, &internal) {
			return false, err
		}
		return false, buildcond.NewIllFormedConditionError(condition, loc, "%v", err)
	}

	ctx := e.NewContext(state, condition, loc)
	return root.BoolEvaluate(ctx)
}

// NewContext builds a context carrying this evaluator's error-handling
// configuration, for callers that drive a compiled tree across multiple
// passes themselves.
func (e *Evaluator) NewContext(state buildcond.State, condition string, loc buildcond.Location) *Context {
	ctx := NewContext(state, condition, loc)
	ctx.lenient = e.lenient
	return ctx
}

// tree returns the compiled node tree for condition, from cache when
// enabled.
func (e *Evaluator) tree(condition string) (Node, error) {
	if e.caching {
		e.mu.Lock()
		cached, ok := e.cache[condition]
		e.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	parsed, err := buildcond.ParseCondition(condition)
	if err != nil {
		return nil, err
	}
	root, err := Compile(parsed)
	if err != nil {
		return nil, err
	}

	if e.caching {
		e.mu.Lock()
		e.cache[condition] = root
		e.mu.Unlock()
	}
	return root, nil
}

// RecordConditionedProperty records value against the property named by a
// bare "$(Name)" reference. Text in any other shape records nothing: only
// unexpanded single-property sides key the conditioned-properties table.
func RecordConditionedProperty(table *buildcond.ConditionedProperties, unexpanded, value string) {
	if table == nil {
		return
	}
	name, ok := propertyRefName(unexpanded)
	if !ok {
		return
	}
	table.Add(name, value)
}

func propertyRefName(text string) (string, bool) {
	if !strings.HasPrefix(text, "$(") || !strings.HasSuffix(text, ")") {
		return "", false
	}
	name := text[2 : len(text)-1]
	if name == "" || strings.ContainsAny(name, "$()@%") {
		return "", false
	}
	return name, true
}

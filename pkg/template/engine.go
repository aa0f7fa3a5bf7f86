package template

import (
	"errors"
	"fmt"
)

// ErrDirective is matched by every directive expansion failure.
var ErrDirective = errors.New("directive expansion failed")

// DirectiveError reports which directive failed and why.
type DirectiveError struct {
	Directive string
	Arg       string
	Err       error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("#%s %s: %v", e.Directive, e.Arg, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDirective) succeed for any DirectiveError.
func (e *DirectiveError) Is(target error) bool {
	return target == ErrDirective
}

// Stage transforms a value, expanding one kind of directive.
type Stage struct {
	Name  string
	Apply func(value string, ctx *Context) (string, error)
}

// Engine runs a value through an ordered list of stages.
type Engine struct {
	stages []Stage
}

// New creates an Engine with the default pipeline: import, header, eval.
func New() *Engine {
	return NewWithStages(ImportStage(), HeaderStage(), EvalStage())
}

// NewWithStages creates an Engine with a custom pipeline.
func NewWithStages(stages ...Stage) *Engine {
	return &Engine{stages: stages}
}

// Stages returns the stage names in execution order.
func (e *Engine) Stages() []string {
	names := make([]string, len(e.stages))
	for i, s := range e.stages {
		names[i] = s.Name
	}
	return names
}

// Process runs value through every stage in order. The first failing stage
// aborts the pipeline.
func (e *Engine) Process(value string, ctx *Context) (string, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	var err error
	for _, s := range e.stages {
		value, err = s.Apply(value, ctx)
		if err != nil {
			return "", err
		}
	}
	return value, nil
}

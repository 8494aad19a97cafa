package workflow

import (
	"context"
	"log/slog"
)

// Stage is one sequential pipeline step with a defined read/write
// contract over the State.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *State) error
}

// Pipeline executes a fixed stage sequence start to end. A stage only
// runs after its predecessor fully completed; there is no concurrency
// between stages and no cancellation mid-run beyond ctx.
type Pipeline struct {
	stages []Stage
	logger *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(logger *slog.Logger, stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages, logger: logger}
}

// Run carries the state through every stage. On a stage failure it
// returns a *StageError naming the stage; the state holds whatever the
// completed stages produced.
func (p *Pipeline) Run(ctx context.Context, state *State) error {
	for _, stage := range p.stages {
		if err := stage.Run(ctx, state); err != nil {
			return &StageError{Stage: stage.Name(), Err: err}
		}
		p.debug("stage completed", "stage", stage.Name(), "run_id", state.RunID)
	}
	return nil
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

// StageError wraps an error with the stage name that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageName reports which stage produced the failure.
func (e *StageError) StageName() string {
	return e.Stage
}

package playlist

import (
	"fmt"

	"github.com/katalvlaran/sonicpath/features"
)

// ErrInvalidInput is the shared input sentinel of the pipeline.
var ErrInvalidInput = features.ErrInvalidInput

// Stage names the pipeline component that failed.
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageValidate Stage = "validate"
	StageEmbed    Stage = "embed"
	StageDistance Stage = "distance"
	StageOptimize Stage = "optimize"
	StagePresent  Stage = "present"
)

// StageError wraps the error of a failed stage. No partial reordering is
// returned alongside it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("playlist: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

package cutter

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageParse   Stage = "parse"
	StageFetch   Stage = "fetch"
	StageTrim    Stage = "trim"
	StageCleanup Stage = "cleanup"
)

// StageError wraps a failure with the step that produced it.
type StageError struct {
	Stage Stage
	Err   error
	// Path is the file left behind by a failed cleanup.
	Path string
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StageParse:
		return e.Err.Error()
	case StageFetch:
		return fmt.Sprintf("fetch failed: %v", e.Err)
	case StageTrim:
		return fmt.Sprintf("trim failed: %v", e.Err)
	case StageCleanup:
		return fmt.Sprintf("cleanup failed, %s left on disk: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf reports the stage of the first StageError in err's chain, or "".
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResult reports an inference result that failed structural validation.
	ErrMalformedResult = errors.New("malformed inference result")
	// ErrUnknownStage reports a stage token outside the known set.
	ErrUnknownStage = fmt.Errorf("%w: unknown stage", ErrMalformedResult)
	// ErrStageRegression reports a requested move to an earlier stage.
	ErrStageRegression = fmt.Errorf("%w: stage regression", ErrMalformedResult)
	// ErrSessionComplete reports a turn attempted after the assessment finished.
	ErrSessionComplete = errors.New("assessment already complete")
	// ErrEmptyMessage reports a turn without user text.
	ErrEmptyMessage = errors.New("empty user message")
	// ErrInference reports a failure of the inference capability itself.
	ErrInference = errors.New("inference failed")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResult, fmt.Sprintf(format, args...))
}

package assessment

import (
	"fmt"

	"PAIBot/internal/model"
)

// ParseStage converts a stage token, rejecting anything outside the seven known stages.
func ParseStage(token string) (model.Stage, error) {
	s, err := model.ParseStage(token)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownStage, token)
	}
	return s, nil
}

// Advance validates a requested transition out of current. Staying put and
// moving forward are allowed; moving back is not, and nothing leaves complete.
func Advance(current, requested model.Stage) (model.Stage, error) {
	if !current.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownStage, current)
	}
	if !requested.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownStage, requested)
	}
	if current.Terminal() {
		return "", ErrSessionComplete
	}
	if requested.Before(current) {
		return "", fmt.Errorf("%w: %s -> %s", ErrStageRegression, current, requested)
	}
	return requested, nil
}

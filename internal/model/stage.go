package model

import "fmt"

// Stage is one phase of the fixed assessment script.
type Stage string

const (
	StageOpening      Stage = "opening"
	StageRisk         Stage = "risk"
	StageGoals        Stage = "goals"
	StageBehavior     Stage = "behavior"
	StageValues       Stage = "values"
	StageConfirmation Stage = "confirmation"
	StageComplete     Stage = "complete"
)

// Stages lists every stage in forward order.
var Stages = []Stage{
	StageOpening, StageRisk, StageGoals, StageBehavior,
	StageValues, StageConfirmation, StageComplete,
}

// stageProgress is the completion percentage reported once a stage is reached.
var stageProgress = map[Stage]int{
	StageOpening:      10,
	StageRisk:         30,
	StageGoals:        50,
	StageBehavior:     70,
	StageValues:       90,
	StageConfirmation: 95,
	StageComplete:     100,
}

// ParseStage returns the stage named by token, or an error for unknown tokens.
func ParseStage(token string) (Stage, error) {
	s := Stage(token)
	if s.Index() < 0 {
		return "", fmt.Errorf("unknown stage %q", token)
	}
	return s, nil
}

// Index returns the stage's position in the forward order, or -1 if unknown.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool { return s.Index() >= 0 }

// Terminal reports whether s is the absorbing final stage.
func (s Stage) Terminal() bool { return s == StageComplete }

// Before reports whether s comes strictly before other.
func (s Stage) Before(other Stage) bool { return s.Index() < other.Index() }

// Progress returns the completion percentage for s.
func (s Stage) Progress() int { return stageProgress[s] }

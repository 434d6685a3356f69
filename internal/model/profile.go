package model

// GoalType is the user's primary investment objective.
type GoalType string

const (
	GoalGrowth       GoalType = "growth"
	GoalIncome       GoalType = "income"
	GoalPreservation GoalType = "preservation"
	GoalImpact       GoalType = "impact"
)

// GoalTypes lists every goal type in declaration order.
var GoalTypes = []GoalType{GoalGrowth, GoalIncome, GoalPreservation, GoalImpact}

// BiasType names a behavioral-finance pattern.
type BiasType string

const (
	BiasLossAversion   BiasType = "loss_aversion"
	BiasOverconfidence BiasType = "overconfidence"
	BiasHerding        BiasType = "herding"
	BiasAnchoring      BiasType = "anchoring"
	BiasConfirmation   BiasType = "confirmation"
	BiasRecency        BiasType = "recency"
)

// BiasTypes lists every bias type in declaration order.
var BiasTypes = []BiasType{
	BiasLossAversion, BiasOverconfidence, BiasHerding,
	BiasAnchoring, BiasConfirmation, BiasRecency,
}

// Strength grades how pronounced a detected bias is.
type Strength string

const (
	StrengthLow    Strength = "low"
	StrengthMedium Strength = "medium"
	StrengthHigh   Strength = "high"
)

// Strengths lists every strength in ascending order.
var Strengths = []Strength{StrengthLow, StrengthMedium, StrengthHigh}

// Neutral values used until evidence arrives.
const (
	NeutralScore      = 50.0
	DefaultConfidence = 0.0
	DefaultGoal       = GoalGrowth
)

// Estimate is a 0-100 score with a 0-1 confidence.
type Estimate struct {
	Raw        float64 `json:"raw"`
	Confidence float64 `json:"confidence"`
}

// Bias is one detected behavioral bias.
type Bias struct {
	Type     BiasType `json:"type"`
	Strength Strength `json:"strength"`
	Evidence string   `json:"evidence"`
}

// ESG holds the user's environmental, social and governance concern, 0-100 each.
type ESG struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// Profile is a fully populated score profile.
type Profile struct {
	Risk          Estimate `json:"risk"`
	TimeHorizon   Estimate `json:"timeHorizon"`
	GoalType      GoalType `json:"goalType"`
	Biases        []Bias   `json:"biases"`
	ESG           ESG      `json:"esg"`
	SDGPriorities []int    `json:"sdgPriorities"`
}

// PartialEstimate is an Estimate whose sub-fields may be absent.
type PartialEstimate struct {
	Raw        *float64 `json:"raw,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// PartialESG is an ESG whose dimensions may be absent.
type PartialESG struct {
	Environmental *float64 `json:"environmental,omitempty"`
	Social        *float64 `json:"social,omitempty"`
	Governance    *float64 `json:"governance,omitempty"`
}

// PartialProfile is a profile in which every field is optional. It is the
// shape persisted by sessions and produced by the inference capability.
//
// A nil slice means the field is absent; an empty non-nil slice means it is
// present and empty.
type PartialProfile struct {
	Risk          *PartialEstimate `json:"risk,omitempty"`
	TimeHorizon   *PartialEstimate `json:"timeHorizon,omitempty"`
	GoalType      *GoalType        `json:"goalType,omitempty"`
	Biases        []Bias           `json:"biases,omitempty"`
	ESG           *PartialESG      `json:"esg,omitempty"`
	SDGPriorities []int            `json:"sdgPriorities,omitempty"`
}

// IsEmpty reports whether no field is present.
func (p PartialProfile) IsEmpty() bool {
	return p.Risk == nil && p.TimeHorizon == nil && p.GoalType == nil &&
		p.Biases == nil && p.ESG == nil && p.SDGPriorities == nil
}

// Partial converts a full profile into a PartialProfile with every field set.
func (p Profile) Partial() PartialProfile {
	goal := p.GoalType
	biases := make([]Bias, len(p.Biases))
	copy(biases, p.Biases)
	sdgs := make([]int, len(p.SDGPriorities))
	copy(sdgs, p.SDGPriorities)
	return PartialProfile{
		Risk:          p.Risk.partial(),
		TimeHorizon:   p.TimeHorizon.partial(),
		GoalType:      &goal,
		Biases:        biases,
		ESG:           &PartialESG{Environmental: f64(p.ESG.Environmental), Social: f64(p.ESG.Social), Governance: f64(p.ESG.Governance)},
		SDGPriorities: sdgs,
	}
}

func (e Estimate) partial() *PartialEstimate {
	return &PartialEstimate{Raw: f64(e.Raw), Confidence: f64(e.Confidence)}
}

func f64(v float64) *float64 { return &v }

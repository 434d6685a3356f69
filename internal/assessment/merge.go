package assessment

import "PAIBot/internal/model"

// Merge combines a partial update with the current partial profile. Each
// field is resolved independently: the update wins when present, then the
// current value, then the neutral default. Estimates and lists are replaced
// whole, never averaged or appended.
func Merge(current, update model.PartialProfile) model.Profile {
	return model.Profile{
		Risk:          mergeEstimate(current.Risk, update.Risk),
		TimeHorizon:   mergeEstimate(current.TimeHorizon, update.TimeHorizon),
		GoalType:      mergeGoal(current.GoalType, update.GoalType),
		Biases:        mergeBiases(current.Biases, update.Biases),
		ESG:           mergeESG(current.ESG, update.ESG),
		SDGPriorities: mergeSDGs(current.SDGPriorities, update.SDGPriorities),
	}
}

func mergeEstimate(current, update *model.PartialEstimate) model.Estimate {
	src := update
	if src == nil {
		src = current
	}
	est := model.Estimate{Raw: model.NeutralScore, Confidence: model.DefaultConfidence}
	if src == nil {
		return est
	}
	if src.Raw != nil {
		est.Raw = *src.Raw
	}
	if src.Confidence != nil {
		est.Confidence = *src.Confidence
	}
	return est
}

func mergeGoal(current, update *model.GoalType) model.GoalType {
	switch {
	case update != nil:
		return *update
	case current != nil:
		return *current
	default:
		return model.DefaultGoal
	}
}

// Biases replace the whole list; detections from earlier turns survive only
// if the latest update omits the field.
func mergeBiases(current, update []model.Bias) []model.Bias {
	src := update
	if src == nil {
		src = current
	}
	out := make([]model.Bias, len(src))
	copy(out, src)
	return out
}

func mergeESG(current, update *model.PartialESG) model.ESG {
	var cur, upd model.PartialESG
	if current != nil {
		cur = *current
	}
	if update != nil {
		upd = *update
	}
	return model.ESG{
		Environmental: pick(upd.Environmental, cur.Environmental),
		Social:        pick(upd.Social, cur.Social),
		Governance:    pick(upd.Governance, cur.Governance),
	}
}

func mergeSDGs(current, update []int) []int {
	src := update
	if src == nil {
		src = current
	}
	out := make([]int, len(src))
	copy(out, src)
	return out
}

func pick(update, current *float64) float64 {
	switch {
	case update != nil:
		return *update
	case current != nil:
		return *current
	default:
		return model.NeutralScore
	}
}

package recommend

import (
	"fmt"
	"math"

	"PAIBot/internal/model"
)

// Factor names as reported in model.FactorScore.
const (
	FactorRisk = "risk"
	FactorTime = "time_horizon"
	FactorESG  = "esg"
	FactorSDG  = "sdg"
)

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func factor(name string, raw, weight float64, commentary string) model.FactorScore {
	raw = clamp(raw)
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Commentary: commentary,
	}
}

// scoreRisk rewards tracks whose risk level is close to the user's tolerance.
// Weight: 0.30
func scoreRisk(p model.Profile, t *model.Track) model.FactorScore {
	match := 100 - math.Abs(t.RiskLevel-p.Risk.Raw)
	return factor(FactorRisk, match, WeightRisk,
		fmt.Sprintf("track %.0f vs user %.0f", t.RiskLevel, p.Risk.Raw))
}

// scoreTime rewards tracks whose horizon is close to the user's horizon.
// Weight: 0.20
func scoreTime(p model.Profile, t *model.Track) model.FactorScore {
	match := 100 - math.Abs(t.TimeHorizon-p.TimeHorizon.Raw)
	return factor(FactorTime, match, WeightTime,
		fmt.Sprintf("track %.0f vs user %.0f", t.TimeHorizon, p.TimeHorizon.Raw))
}

// scoreESG weighs each dimension's user concern times track strength by the
// share of concern the user puts on that dimension.
// Weight: 0.30
func scoreESG(p model.Profile, t *model.Track) model.FactorScore {
	e, s, g := p.ESG.Environmental, p.ESG.Social, p.ESG.Governance
	we, ws, wg := 1.0/3, 1.0/3, 1.0/3
	if total := e + s + g; total > 0 {
		we, ws, wg = e/total, s/total, g/total
	}
	match := we*(e*t.ESGProfile.E)/100 +
		ws*(s*t.ESGProfile.S)/100 +
		wg*(g*t.ESGProfile.G)/100
	return factor(FactorESG, match, WeightESG,
		fmt.Sprintf("weights E=%.2f S=%.2f G=%.2f", we, ws, wg))
}

// scoreSDG measures the overlap between the user's priorities and the track's goals.
// No priorities yields a neutral 50.
// Weight: 0.20
func scoreSDG(p model.Profile, t *model.Track) model.FactorScore {
	if len(p.SDGPriorities) == 0 {
		return factor(FactorSDG, 50, WeightSDG, "no priorities")
	}
	shared := sharedSDGs(p, t)
	maxPossible := min(len(p.SDGPriorities), len(t.SDGs))
	var match float64
	if maxPossible > 0 {
		match = float64(len(shared)) / float64(maxPossible) * 100
	}
	return factor(FactorSDG, match, WeightSDG,
		fmt.Sprintf("%d of %d shared", len(shared), maxPossible))
}

// sharedSDGs returns the user's priorities the track also serves, in the user's order.
func sharedSDGs(p model.Profile, t *model.Track) []int {
	var out []int
	for _, id := range p.SDGPriorities {
		if t.HasSDG(id) {
			out = append(out, id)
		}
	}
	return out
}

// dominant returns the strongest of three dimensions. E wins only when
// strictly greater than both others, then S when strictly greater than G.
func dominant(e, s, g float64) string {
	switch {
	case e > math.Max(s, g):
		return "E"
	case s > g:
		return "S"
	default:
		return "G"
	}
}

// DominantESG returns "E", "S" or "G" for the strongest dimension of a profile.
func DominantESG(esg model.ESG) string {
	return dominant(esg.Environmental, esg.Social, esg.Governance)
}

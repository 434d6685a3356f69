package recommend

import (
	"math"
	"sort"

	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
)

// TopN is the number of tracks returned by Recommend.
const TopN = 3

// Factor weights; they sum to 1.
const (
	WeightRisk = 0.30
	WeightTime = 0.20
	WeightESG  = 0.30
	WeightSDG  = 0.20
)

// Engine ranks catalog tracks against a finalized profile.
type Engine struct {
	locale i18n.Locale
	topN   int
}

// NewEngine creates an Engine whose rationale text is rendered in loc.
func NewEngine(loc i18n.Locale) *Engine {
	return &Engine{locale: loc, topN: TopN}
}

// Recommend ranks tracks for p with the default locale and returns the top three.
func Recommend(p model.Profile, tracks []model.Track) []model.Recommendation {
	return NewEngine(i18n.Default).Recommend(p, tracks)
}

// Recommend returns the best min(3, len(tracks)) tracks for p, best first.
func (e *Engine) Recommend(p model.Profile, tracks []model.Track) []model.Recommendation {
	ranked := e.Rank(p, tracks)
	if len(ranked) > e.topN {
		ranked = ranked[:e.topN]
	}
	return ranked
}

// Rank scores every track and sorts them by descending match score.
// Equal scores keep catalog order.
func (e *Engine) Rank(p model.Profile, tracks []model.Track) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(tracks))
	for i := range tracks {
		out = append(out, e.Evaluate(p, tracks[i]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// Evaluate computes the match of a single track.
func (e *Engine) Evaluate(p model.Profile, t model.Track) model.Recommendation {
	f1 := scoreRisk(p, &t)
	f2 := scoreTime(p, &t)
	f3 := scoreESG(p, &t)
	f4 := scoreSDG(p, &t)

	total := f1.Weighted + f2.Weighted + f3.Weighted + f4.Weighted

	return model.Recommendation{
		Track:      t,
		MatchScore: int(math.Round(total)),
		Reason:     e.reason(p, &t, f1, f2),
		Factors:    []model.FactorScore{f1, f2, f3, f4},
	}
}

// Localize re-renders the rationale of previously computed recommendations in
// the engine's locale. Tracks, scores and order are kept.
func (e *Engine) Localize(p model.Profile, recs []model.Recommendation) []model.Recommendation {
	out := make([]model.Recommendation, len(recs))
	for i, r := range recs {
		t := r.Track
		r.Reason = e.reason(p, &t, scoreRisk(p, &t), scoreTime(p, &t))
		out[i] = r
	}
	return out
}

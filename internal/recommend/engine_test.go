package recommend

import (
	"math"
	"strings"
	"testing"

	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
)

func referenceProfile() model.Profile {
	return model.Profile{
		Risk:          model.Estimate{Raw: 60, Confidence: 0.8},
		TimeHorizon:   model.Estimate{Raw: 70, Confidence: 0.8},
		GoalType:      model.GoalImpact,
		ESG:           model.ESG{Environmental: 90, Social: 40, Governance: 50},
		SDGPriorities: []int{7, 13, 9},
	}
}

func neutralProfile() model.Profile {
	return model.Profile{
		Risk:        model.Estimate{Raw: 50},
		TimeHorizon: model.Estimate{Raw: 50},
		GoalType:    model.GoalGrowth,
		ESG:         model.ESG{Environmental: 50, Social: 50, Governance: 50},
	}
}

func TestRecommend_ReferenceProfile(t *testing.T) {
	recs := Recommend(referenceProfile(), catalog.Default().Tracks())
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Track.ID != "renewable_energy" {
		t.Fatalf("expected renewable_energy first, got %s", recs[0].Track.ID)
	}
	// 0.3*100 + 0.2*100 + 0.3*53.25 + 0.2*100 = 85.975
	if recs[0].MatchScore != 86 {
		t.Errorf("expected match score 86, got %d", recs[0].MatchScore)
	}
	wantOrder := []string{"renewable_energy", "circular_economy", "sustainable_transport"}
	for i, id := range wantOrder {
		if recs[i].Track.ID != id {
			t.Errorf("rank %d: expected %s, got %s", i+1, id, recs[i].Track.ID)
		}
	}
	if recs[1].MatchScore != 76 || recs[2].MatchScore != 74 {
		t.Errorf("expected scores 76, 74, got %d, %d", recs[1].MatchScore, recs[2].MatchScore)
	}
}

func TestEvaluate_FactorBreakdown(t *testing.T) {
	tr, _ := catalog.Default().Get("renewable_energy")
	rec := NewEngine(i18n.English).Evaluate(referenceProfile(), tr)
	if len(rec.Factors) != 4 {
		t.Fatalf("expected 4 factors, got %d", len(rec.Factors))
	}
	want := map[string]float64{
		FactorRisk: 100,
		FactorTime: 100,
		FactorESG:  53.25,
		FactorSDG:  100,
	}
	var total float64
	for _, f := range rec.Factors {
		w, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected factor %q", f.Name)
			continue
		}
		if math.Abs(f.RawScore-w) > 1e-9 {
			t.Errorf("%s: expected %.4f, got %.4f", f.Name, w, f.RawScore)
		}
		total += f.Weight
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("weights should sum to 1, got %.4f", total)
	}
}

func TestRecommend_Bounds(t *testing.T) {
	tracks := catalog.Default().Tracks()
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 0},
		{"one", 1, 1},
		{"two", 2, 2},
		{"three", 3, 3},
		{"full", len(tracks), 3},
	}
	for _, tt := range tests {
		recs := Recommend(referenceProfile(), tracks[:tt.n])
		if recs == nil {
			t.Errorf("%s: expected empty slice, got nil", tt.name)
		}
		if len(recs) != tt.want {
			t.Errorf("%s: expected %d recommendations, got %d", tt.name, tt.want, len(recs))
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	ranked := NewEngine(i18n.English).Rank(neutralProfile(), catalog.Default().Tracks())
	pos := make(map[string]int, len(ranked))
	for i, r := range ranked {
		pos[r.Track.ID] = i
		if i > 0 && r.MatchScore > ranked[i-1].MatchScore {
			t.Errorf("rank %d (%d) above rank %d (%d)", i, r.MatchScore, i-1, ranked[i-1].MatchScore)
		}
	}
	// circular_economy and education_inclusion both score 65;
	// renewable_energy and biodiversity_nature both score 62.
	pairs := [][2]string{
		{"circular_economy", "education_inclusion"},
		{"renewable_energy", "biodiversity_nature"},
	}
	for _, p := range pairs {
		a, b := ranked[pos[p[0]]], ranked[pos[p[1]]]
		if a.MatchScore != b.MatchScore {
			t.Fatalf("expected %s and %s to tie, got %d and %d", p[0], p[1], a.MatchScore, b.MatchScore)
		}
		if pos[p[0]] > pos[p[1]] {
			t.Errorf("tie between %s and %s should keep catalog order", p[0], p[1])
		}
	}
}

func TestRank_IdenticalTracksKeepOrder(t *testing.T) {
	base, _ := catalog.Default().Get("water_ocean")
	var tracks []model.Track
	for _, id := range []string{"a", "b", "c", "d"} {
		tr := base
		tr.ID = id
		tracks = append(tracks, tr)
	}
	recs := Recommend(referenceProfile(), tracks)
	for i, id := range []string{"a", "b", "c"} {
		if recs[i].Track.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, recs[i].Track.ID)
		}
	}
}

func TestScoreESG_ZeroConcern(t *testing.T) {
	p := neutralProfile()
	p.ESG = model.ESG{}
	tr, _ := catalog.Default().Get("renewable_energy")
	f := scoreESG(p, &tr)
	if f.RawScore != 0 {
		t.Errorf("zero concern should score 0, got %.3f", f.RawScore)
	}
	if !strings.Contains(f.Commentary, "0.33") {
		t.Errorf("expected equal weights in commentary, got %q", f.Commentary)
	}
}

func TestScoreSDG(t *testing.T) {
	tests := []struct {
		name  string
		user  []int
		track []int
		want  float64
	}{
		{"no priorities is neutral", nil, []int{7}, 50},
		{"full overlap", []int{7, 13}, []int{7, 13, 9}, 100},
		{"partial overlap", []int{7, 1, 2}, []int{7, 13, 9}, 100.0 / 3},
		{"bounded by smaller set", []int{7, 13, 9, 1}, []int{7, 13}, 100},
		{"no overlap", []int{1}, []int{7}, 0},
		{"track without goals", []int{1}, nil, 0},
	}
	for _, tt := range tests {
		p := neutralProfile()
		p.SDGPriorities = tt.user
		tr := model.Track{ID: "x", SDGs: tt.track}
		got := scoreSDG(p, &tr).RawScore
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %.3f, got %.3f", tt.name, tt.want, got)
		}
	}
}

func TestScoreRisk_Clamped(t *testing.T) {
	p := neutralProfile()
	p.Risk.Raw = 250
	tr := model.Track{ID: "x", RiskLevel: 0}
	if got := scoreRisk(p, &tr).RawScore; got != 0 {
		t.Errorf("expected clamp to 0, got %.1f", got)
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		e, s, g float64
		want    string
	}{
		{90, 40, 50, "E"},
		{40, 90, 50, "S"},
		{40, 50, 90, "G"},
		{50, 50, 50, "G"},
		{60, 60, 10, "S"},
		{60, 10, 60, "G"},
	}
	for _, tt := range tests {
		if got := dominant(tt.e, tt.s, tt.g); got != tt.want {
			t.Errorf("dominant(%v,%v,%v): expected %s, got %s", tt.e, tt.s, tt.g, tt.want, got)
		}
	}
}

func TestReason(t *testing.T) {
	tr, _ := catalog.Default().Get("renewable_energy")
	en := NewEngine(i18n.English)

	got := en.Evaluate(referenceProfile(), tr).Reason
	want := "Fits your balanced risk appetite; Suited to long-term investment planning"
	if got != want {
		t.Errorf("risk+time reason:\nwant %q\n got %q", want, got)
	}

	p := referenceProfile()
	p.Risk.Raw, p.TimeHorizon.Raw = 0, 0
	p.SDGPriorities = []int{7}
	got = en.Evaluate(p, tr).Reason
	want = "Strongly aligned with the environmental issues you care about; Directly contributes to goals you prioritize (Clean Energy)"
	if got != want {
		t.Errorf("esg+sdg reason:\nwant %q\n got %q", want, got)
	}

	p.ESG = model.ESG{Environmental: 10, Social: 10, Governance: 90}
	p.SDGPriorities = []int{1}
	if got = en.Evaluate(p, tr).Reason; got != "Shows solid investment potential" {
		t.Errorf("expected fallback reason, got %q", got)
	}

	zh := NewEngine(i18n.Chinese).Evaluate(referenceProfile(), tr).Reason
	if zh != "符合你的平衡型風險偏好，適合長期投資規劃" {
		t.Errorf("unexpected zh reason %q", zh)
	}
}

func TestLocalize(t *testing.T) {
	p := referenceProfile()
	en := NewEngine(i18n.English).Recommend(p, catalog.Default().Tracks())
	zh := NewEngine(i18n.Chinese).Localize(p, en)

	if len(zh) != len(en) {
		t.Fatalf("expected %d recommendations, got %d", len(en), len(zh))
	}
	direct := NewEngine(i18n.Chinese).Recommend(p, catalog.Default().Tracks())
	for i := range zh {
		if zh[i].Track.ID != en[i].Track.ID || zh[i].MatchScore != en[i].MatchScore {
			t.Errorf("rank %d changed: %s/%d -> %s/%d", i, en[i].Track.ID, en[i].MatchScore, zh[i].Track.ID, zh[i].MatchScore)
		}
		if zh[i].Reason != direct[i].Reason {
			t.Errorf("rank %d: expected reason %q, got %q", i, direct[i].Reason, zh[i].Reason)
		}
	}
	if en[0].Reason == zh[0].Reason {
		t.Errorf("expected localized reason to differ from English %q", en[0].Reason)
	}
}

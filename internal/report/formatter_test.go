package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"PAIBot/internal/advisor"
	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
	"PAIBot/internal/recommend"
)

func sampleResult(loc i18n.Locale) *advisor.Result {
	p := model.Profile{
		Risk:          model.Estimate{Raw: 60, Confidence: 0.8},
		TimeHorizon:   model.Estimate{Raw: 70, Confidence: 0.75},
		GoalType:      model.GoalImpact,
		Biases:        []model.Bias{{Type: model.BiasLossAversion, Strength: model.StrengthMedium, Evidence: "sold in 2022"}},
		ESG:           model.ESG{Environmental: 90, Social: 40, Governance: 50},
		SDGPriorities: []int{7, 13},
	}
	return &advisor.Result{
		SessionID:       "session_x",
		Profile:         p,
		InvestorType:    i18n.For(loc).InvestorType(p.Risk.Raw),
		Summary:         advisor.Summary(p, loc),
		Biases:          p.Biases,
		Recommendations: recommend.NewEngine(loc).Recommend(p, catalog.Default().Tracks()),
	}
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(sampleResult(i18n.English), i18n.English)

	for _, want := range []string{
		"Sustainable investing assessment",
		"Balanced impact investor",
		"Risk tolerance: 60 (80%)",
		"Goal: impact",
		"E 90 | S 40 | G 50",
		"7 Clean Energy",
		"loss_aversion (medium): sold in 2022",
		"1. Renewable Energy  match",
		"risk 100×0.30",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 3, strings.Count(out, " match "))
}

func TestFormatResult_Chinese(t *testing.T) {
	res := sampleResult(i18n.Chinese)
	res.Biases = nil
	out := FormatResult(res, i18n.Chinese)

	assert.Contains(t, out, "永續投資評估")
	assert.Contains(t, out, "再生能源")
	assert.Contains(t, out, "可負擔的潔淨能源")
	assert.Contains(t, out, "行為偏誤:\n  無\n")
}

func TestFormatTracks(t *testing.T) {
	out := FormatTracks(catalog.Default().Tracks(), i18n.English)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "renewable_energy"))
	assert.Contains(t, lines[0], "Renewable Energy")
}

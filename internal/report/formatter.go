// Package report renders assessment results as plain text.
package report

import (
	"fmt"
	"strings"

	"PAIBot/internal/advisor"
	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
)

type labels struct {
	title, profile, risk, horizon, goal, esg, sdgs, biases, tracks, match, factors, none string
}

var labelsByLocale = map[i18n.Locale]labels{
	i18n.English: {
		title: "Sustainable investing assessment", profile: "Profile", risk: "Risk tolerance",
		horizon: "Time horizon", goal: "Goal", esg: "ESG concern", sdgs: "Priority SDGs",
		biases: "Behavioral biases", tracks: "Recommended tracks", match: "match", factors: "factors", none: "none",
	},
	i18n.Chinese: {
		title: "永續投資評估", profile: "投資輪廓", risk: "風險承受度",
		horizon: "投資期限", goal: "目標", esg: "ESG 關注", sdgs: "優先 SDG",
		biases: "行為偏誤", tracks: "推薦賽道", match: "匹配度", factors: "因子", none: "無",
	},
}

func labelsFor(loc i18n.Locale) labels {
	if l, ok := labelsByLocale[loc]; ok {
		return l
	}
	return labelsByLocale[i18n.Default]
}

// FormatResult formats a finalized assessment for terminal or text output.
func FormatResult(res *advisor.Result, loc i18n.Locale) string {
	l := labelsFor(loc)
	p := res.Profile
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌱 %s", l.title))
	if res.CompletedAt != nil {
		b.WriteString(fmt.Sprintf(" | %s", res.CompletedAt.Format("2006-01-02")))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s: %s\n", res.InvestorType, res.Summary))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("📋 %s:\n", l.profile))
	b.WriteString(fmt.Sprintf("  %s: %.0f (%.0f%%)\n", l.risk, p.Risk.Raw, p.Risk.Confidence*100))
	b.WriteString(fmt.Sprintf("  %s: %.0f (%.0f%%)\n", l.horizon, p.TimeHorizon.Raw, p.TimeHorizon.Confidence*100))
	b.WriteString(fmt.Sprintf("  %s: %s\n", l.goal, p.GoalType))
	b.WriteString(fmt.Sprintf("  %s: E %.0f | S %.0f | G %.0f\n", l.esg, p.ESG.Environmental, p.ESG.Social, p.ESG.Governance))
	b.WriteString(fmt.Sprintf("  %s: %s\n", l.sdgs, formatSDGs(p.SDGPriorities, loc, l)))

	b.WriteString(fmt.Sprintf("\n🧠 %s:\n", l.biases))
	if len(res.Biases) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", l.none))
	}
	for _, bias := range res.Biases {
		b.WriteString(fmt.Sprintf("  %s (%s): %s\n", bias.Type, bias.Strength, bias.Evidence))
	}

	b.WriteString(fmt.Sprintf("\n📈 %s:\n", l.tracks))
	for i, r := range res.Recommendations {
		b.WriteString(fmt.Sprintf("  %d. %s  %s %d\n", i+1, i18n.Pick(r.Track.Name, loc), l.match, r.MatchScore))
		b.WriteString(fmt.Sprintf("     %s\n", r.Reason))
		if len(r.Factors) > 0 {
			b.WriteString(fmt.Sprintf("     %s: %s\n", l.factors, formatFactors(r.Factors)))
		}
	}
	return b.String()
}

// FormatTracks lists catalog tracks, one per line.
func FormatTracks(tracks []model.Track, loc i18n.Locale) string {
	var b strings.Builder
	for _, t := range tracks {
		b.WriteString(fmt.Sprintf("%-24s %-28s risk %3.0f  horizon %3.0f  ESG %2.0f/%2.0f/%2.0f  SDG %v\n",
			t.ID, i18n.Pick(t.Name, loc), t.RiskLevel, t.TimeHorizon,
			t.ESGProfile.E, t.ESGProfile.S, t.ESGProfile.G, t.SDGs))
	}
	return b.String()
}

func formatFactors(fs []model.FactorScore) string {
	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		parts = append(parts, fmt.Sprintf("%s %.0f×%.2f", f.Name, f.RawScore, f.Weight))
	}
	return strings.Join(parts, " | ")
}

func formatSDGs(ids []int, loc i18n.Locale, l labels) string {
	if len(ids) == 0 {
		return l.none
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if info, ok := catalog.SDG(id); ok {
			parts = append(parts, fmt.Sprintf("%s %d %s", info.Icon, id, i18n.Pick(info.Name, loc)))
		} else {
			parts = append(parts, fmt.Sprintf("%d", id))
		}
	}
	return strings.Join(parts, ", ")
}

package recommend

import (
	"fmt"
	"strings"

	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
)

const (
	maxReasons     = 2
	closeThreshold = 80
)

// reason explains a match with at most two phrases, chosen in the order
// risk, horizon, dominant ESG dimension, shared SDGs.
func (e *Engine) reason(p model.Profile, t *model.Track, risk, horizon model.FactorScore) string {
	ph := i18n.For(e.locale)
	var parts []string

	if risk.RawScore > closeThreshold {
		parts = append(parts, fmt.Sprintf(ph.RiskReason, ph.RiskLabel[i18n.RiskKey(p.Risk.Raw)]))
	}
	if horizon.RawScore > closeThreshold {
		parts = append(parts, fmt.Sprintf(ph.TimeReason, ph.TimeLabel[i18n.TimeKey(p.TimeHorizon.Raw)]))
	}
	user := dominant(p.ESG.Environmental, p.ESG.Social, p.ESG.Governance)
	if user == dominant(t.ESGProfile.E, t.ESGProfile.S, t.ESGProfile.G) {
		parts = append(parts, fmt.Sprintf(ph.ESGReason, ph.ESGName[user]))
	}
	if shared := sharedSDGs(p, t); len(shared) > 0 {
		parts = append(parts, fmt.Sprintf(ph.SDGReason, e.sdgNames(shared, ph)))
	}

	if len(parts) == 0 {
		return ph.Fallback
	}
	if len(parts) > maxReasons {
		parts = parts[:maxReasons]
	}
	return strings.Join(parts, ph.Separator)
}

func (e *Engine) sdgNames(ids []int, ph *i18n.Phrases) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if info, ok := catalog.SDG(id); ok {
			names = append(names, i18n.Pick(info.Name, e.locale))
		} else {
			names = append(names, fmt.Sprintf("SDG %d", id))
		}
	}
	return strings.Join(names, ph.ListSep)
}

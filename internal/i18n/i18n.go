// Package i18n holds the display strings of the assessment service.
// Nothing in here affects scoring.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"PAIBot/internal/model"
)

// Locale identifies a supported display language.
type Locale string

const (
	English Locale = "en"
	Chinese Locale = "zh"
)

// Default is used when no locale is requested.
const Default = English

// Locales lists the supported locales, default first.
var Locales = []Locale{English, Chinese}

// Parse maps a language tag to a supported locale. Every Chinese variant maps
// to Chinese; anything else maps to English.
func Parse(tag string) Locale {
	t := strings.ToLower(strings.TrimSpace(tag))
	if t == "zh" || strings.HasPrefix(t, "zh-") || strings.HasPrefix(t, "zh_") {
		return Chinese
	}
	return English
}

// supported is the matcher's tag list; scripts are listed so that zh-TW and
// zh-CN match with high confidence. matched maps each index back to a Locale.
var (
	supported = []language.Tag{language.English, language.Chinese, language.TraditionalChinese, language.SimplifiedChinese}
	matched   = []Locale{English, Chinese, Chinese, Chinese}
	matcher   = language.NewMatcher(supported)
)

// Negotiate resolves an Accept-Language header value, honoring quality
// weights. It returns def when the header is empty, invalid or matches nothing.
func Negotiate(acceptLanguage string, def Locale) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return matched[idx]
}

// Pick returns the text of l in loc, falling back to the other language when empty.
func Pick(l model.Localized, loc Locale) string {
	if loc == Chinese {
		if l.Zh != "" {
			return l.Zh
		}
		return l.En
	}
	if l.En != "" {
		return l.En
	}
	return l.Zh
}

// Phrases is the set of strings needed to explain an assessment result.
type Phrases struct {
	Language   model.Localized
	Opening    string
	Stages     map[model.Stage]string
	RiskLabel  [4]string // aggressive, balanced, steady, conservative
	TimeLabel  [3]string // long, medium, short
	ESGName    map[string]string
	RiskReason string // %s = risk label
	TimeReason string // %s = horizon label
	ESGReason  string // %s = dimension name
	SDGReason  string // %s = shared goal names
	Fallback   string
	Separator  string
	ListSep    string
	Investor   map[string]string
	Summary    string // %s investor type, %s horizon label, %s ESG name
}

var phrasebooks = map[Locale]*Phrases{
	English: {
		Language: model.Localized{Zh: "英文", En: "English"},
		Opening:  "Hi! I'm your sustainable investing assistant, and I'm glad to help you explore investment directions that suit you. Before we start, have you invested before? Could you briefly share your investment background?",
		Stages: map[model.Stage]string{
			model.StageOpening:      "Introduction",
			model.StageRisk:         "Risk tolerance",
			model.StageGoals:        "Goals & time horizon",
			model.StageBehavior:     "Behavioral patterns",
			model.StageValues:       "Sustainability values",
			model.StageConfirmation: "Confirmation",
			model.StageComplete:     "Complete",
		},
		RiskLabel:  [4]string{"aggressive", "balanced", "steady", "conservative"},
		TimeLabel:  [3]string{"long-term", "medium-term", "short-term"},
		ESGName:    map[string]string{"E": "environmental", "S": "social", "G": "governance"},
		RiskReason: "Fits your %s risk appetite",
		TimeReason: "Suited to %s investment planning",
		ESGReason:  "Strongly aligned with the %s issues you care about",
		SDGReason:  "Directly contributes to goals you prioritize (%s)",
		Fallback:   "Shows solid investment potential",
		Separator:  "; ",
		ListSep:    ", ",
		Investor: map[string]string{
			"aggressive":   "Aggressive impact investor",
			"balanced":     "Balanced impact investor",
			"steady":       "Steady impact investor",
			"conservative": "Conservative impact investor",
		},
		Summary: "%s with a %s horizon who cares most about %s issues.",
	},
	Chinese: {
		Language: model.Localized{Zh: "中文", En: "Chinese"},
		Opening:  "你好！我是永續投資助手，很高興能協助你探索適合的投資方向。在開始之前，我想先了解一下，你過去有投資經驗嗎？可以簡單分享一下你的投資背景嗎？",
		Stages: map[model.Stage]string{
			model.StageOpening:      "開場",
			model.StageRisk:         "風險評估",
			model.StageGoals:        "目標與時間",
			model.StageBehavior:     "行為偏誤",
			model.StageValues:       "永續價值觀",
			model.StageConfirmation: "確認",
			model.StageComplete:     "完成",
		},
		RiskLabel:  [4]string{"積極", "平衡", "穩健", "保守"},
		TimeLabel:  [3]string{"長期", "中期", "短期"},
		ESGName:    map[string]string{"E": "環境", "S": "社會", "G": "治理"},
		RiskReason: "符合你的%s型風險偏好",
		TimeReason: "適合%s投資規劃",
		ESGReason:  "與你重視的%s議題高度契合",
		SDGReason:  "直接貢獻你關注的永續發展目標（%s）",
		Fallback:   "具有良好的投資潛力",
		Separator:  "，",
		ListSep:    "、",
		Investor: map[string]string{
			"aggressive":   "積極型永續投資人",
			"balanced":     "平衡型永續投資人",
			"steady":       "穩健型永續投資人",
			"conservative": "保守型永續投資人",
		},
		Summary: "%s，偏好%s投資，最重視%s議題。",
	},
}

// For returns the phrasebook of loc, or the default one for unknown locales.
func For(loc Locale) *Phrases {
	if p, ok := phrasebooks[loc]; ok {
		return p
	}
	return phrasebooks[Default]
}

// StageName returns the display name of a stage.
func (p *Phrases) StageName(s model.Stage) string {
	if n, ok := p.Stages[s]; ok {
		return n
	}
	return string(s)
}

// RiskKey buckets a risk score: >75 aggressive, >50 balanced, >25 steady, else conservative.
func RiskKey(raw float64) int {
	switch {
	case raw > 75:
		return 0
	case raw > 50:
		return 1
	case raw > 25:
		return 2
	default:
		return 3
	}
}

// TimeKey buckets a horizon score: >67 long, >34 medium, else short.
func TimeKey(raw float64) int {
	switch {
	case raw > 67:
		return 0
	case raw > 34:
		return 1
	default:
		return 2
	}
}

var investorKeys = [4]string{"aggressive", "balanced", "steady", "conservative"}

// InvestorType returns the localized investor label for a risk score.
func (p *Phrases) InvestorType(risk float64) string {
	return p.Investor[investorKeys[RiskKey(risk)]]
}

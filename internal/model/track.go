package model

// Localized is a text available in Traditional Chinese and English.
type Localized struct {
	Zh string `json:"zh" yaml:"zh"`
	En string `json:"en" yaml:"en"`
}

// TrackESG is a track's environmental, social and governance strength, 0-100 each.
type TrackESG struct {
	E float64 `json:"E" yaml:"e"`
	S float64 `json:"S" yaml:"s"`
	G float64 `json:"G" yaml:"g"`
}

// Track is an investable sustainability-themed strategy.
type Track struct {
	ID          string      `json:"id" yaml:"id"`
	Name        Localized   `json:"name" yaml:"name"`
	Description Localized   `json:"description" yaml:"description"`
	RiskLevel   float64     `json:"riskLevel" yaml:"risk_level"`
	TimeHorizon float64     `json:"timeHorizon" yaml:"time_horizon"`
	ESGProfile  TrackESG    `json:"esgProfile" yaml:"esg_profile"`
	SDGs        []int       `json:"sdgs" yaml:"sdgs"`
	Sectors     []Localized `json:"sectors" yaml:"sectors"`
	Examples    []Localized `json:"examples" yaml:"examples"`
}

// HasSDG reports whether the track contributes to the given goal.
func (t *Track) HasSDG(id int) bool {
	for _, s := range t.SDGs {
		if s == id {
			return true
		}
	}
	return false
}

// SDGInfo is the display data of one UN Sustainable Development Goal.
type SDGInfo struct {
	ID   int       `json:"id"`
	Name Localized `json:"name"`
	Icon string    `json:"icon"`
}

package model

// FactorScore represents a single matching dimension's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary,omitempty"`
}

// Recommendation is one ranked track for a profile.
type Recommendation struct {
	Track      Track         `json:"track"`
	MatchScore int           `json:"matchScore"`
	Reason     string        `json:"reason"`
	Factors    []FactorScore `json:"factors,omitempty"`
}

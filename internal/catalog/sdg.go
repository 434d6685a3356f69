package catalog

import "PAIBot/internal/model"

var sdgTable = [...]model.SDGInfo{
	{ID: 1, Name: l("消除貧窮", "No Poverty"), Icon: "🏘️"},
	{ID: 2, Name: l("消除飢餓", "Zero Hunger"), Icon: "🌾"},
	{ID: 3, Name: l("健康與福祉", "Good Health"), Icon: "❤️"},
	{ID: 4, Name: l("優質教育", "Quality Education"), Icon: "📚"},
	{ID: 5, Name: l("性別平等", "Gender Equality"), Icon: "⚖️"},
	{ID: 6, Name: l("淨水與衛生", "Clean Water"), Icon: "💧"},
	{ID: 7, Name: l("可負擔的潔淨能源", "Clean Energy"), Icon: "⚡"},
	{ID: 8, Name: l("就業與經濟成長", "Decent Work"), Icon: "💼"},
	{ID: 9, Name: l("工業、創新與基礎建設", "Innovation"), Icon: "🏗️"},
	{ID: 10, Name: l("減少不平等", "Reduced Inequalities"), Icon: "🤝"},
	{ID: 11, Name: l("永續城市與社區", "Sustainable Cities"), Icon: "🏙️"},
	{ID: 12, Name: l("責任消費與生產", "Responsible Consumption"), Icon: "♻️"},
	{ID: 13, Name: l("氣候行動", "Climate Action"), Icon: "🌍"},
	{ID: 14, Name: l("海洋生態", "Life Below Water"), Icon: "🌊"},
	{ID: 15, Name: l("陸地生態", "Life on Land"), Icon: "🌳"},
	{ID: 16, Name: l("和平、正義與健全制度", "Peace & Justice"), Icon: "⚖️"},
	{ID: 17, Name: l("全球夥伴關係", "Partnerships"), Icon: "🤝"},
}

// SDG returns the reference entry for goal id 1-17.
func SDG(id int) (model.SDGInfo, bool) {
	if id < 1 || id > len(sdgTable) {
		return model.SDGInfo{}, false
	}
	return sdgTable[id-1], true
}

// SDGs returns all 17 goals in id order.
func SDGs() []model.SDGInfo {
	out := make([]model.SDGInfo, len(sdgTable))
	copy(out, sdgTable[:])
	return out
}

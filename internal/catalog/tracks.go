package catalog

import "PAIBot/internal/model"

// DefaultVersion identifies the compiled-in track list.
const DefaultVersion = "2025.1"

func l(zh, en string) model.Localized { return model.Localized{Zh: zh, En: en} }

var defaultTracks = []model.Track{
	{
		ID:          "renewable_energy",
		Name:        l("再生能源", "Renewable Energy"),
		Description: l("投資太陽能、風能、水力等清潔能源技術與基礎設施，推動能源轉型", "Solar, wind, hydro and other clean-energy technology and infrastructure driving the energy transition"),
		RiskLevel:   60,
		TimeHorizon: 70,
		SDGs:        []int{7, 13, 9},
		ESGProfile:  model.TrackESG{E: 95, S: 40, G: 50},
		Sectors:     []model.Localized{l("能源", "Energy"), l("公用事業", "Utilities"), l("工業", "Industrials")},
		Examples:    []model.Localized{l("太陽能電廠", "Solar farms"), l("離岸風電", "Offshore wind"), l("綠色氫能", "Green hydrogen"), l("儲能系統", "Energy storage")},
	},
	{
		ID:          "circular_economy",
		Name:        l("循環經濟", "Circular Economy"),
		Description: l("投資廢棄物管理、回收技術、永續材料等循環經濟解決方案", "Waste management, recycling technology, sustainable materials and other circular-economy solutions"),
		RiskLevel:   55,
		TimeHorizon: 65,
		SDGs:        []int{12, 9, 13},
		ESGProfile:  model.TrackESG{E: 85, S: 45, G: 55},
		Sectors:     []model.Localized{l("環保", "Environmental services"), l("材料", "Materials"), l("工業", "Industrials")},
		Examples:    []model.Localized{l("廢棄物處理", "Waste treatment"), l("再生材料", "Recycled materials"), l("產品即服務", "Product-as-a-service"), l("生物可分解材料", "Biodegradable materials")},
	},
	{
		ID:          "water_ocean",
		Name:        l("水資源與海洋", "Water & Ocean"),
		Description: l("投資水處理技術、海洋保護與永續漁業相關企業", "Water treatment technology, ocean protection and sustainable fisheries"),
		RiskLevel:   50,
		TimeHorizon: 60,
		SDGs:        []int{6, 14, 15},
		ESGProfile:  model.TrackESG{E: 90, S: 50, G: 50},
		Sectors:     []model.Localized{l("公用事業", "Utilities"), l("環保", "Environmental services"), l("食品", "Food")},
		Examples:    []model.Localized{l("水處理設施", "Water treatment plants"), l("海水淡化", "Desalination"), l("永續漁業", "Sustainable fisheries"), l("海洋清潔技術", "Ocean clean-up technology")},
	},
	{
		ID:          "sustainable_agriculture",
		Name:        l("永續農業與糧食", "Sustainable Agriculture"),
		Description: l("投資有機農業、植物基蛋白、農業科技等永續糧食系統", "Organic farming, plant-based protein, agritech and other sustainable food systems"),
		RiskLevel:   65,
		TimeHorizon: 60,
		SDGs:        []int{2, 12, 13, 15},
		ESGProfile:  model.TrackESG{E: 80, S: 60, G: 45},
		Sectors:     []model.Localized{l("農業", "Agriculture"), l("食品", "Food"), l("科技", "Technology")},
		Examples:    []model.Localized{l("有機農場", "Organic farms"), l("植物肉", "Plant-based meat"), l("垂直農場", "Vertical farms"), l("精準農業", "Precision agriculture")},
	},
	{
		ID:          "health_wellbeing",
		Name:        l("健康與福祉", "Health & Wellbeing"),
		Description: l("投資醫療科技、預防醫學、心理健康等提升人類福祉的產業", "Medical technology, preventive medicine, mental health and other industries improving human wellbeing"),
		RiskLevel:   45,
		TimeHorizon: 55,
		SDGs:        []int{3, 10},
		ESGProfile:  model.TrackESG{E: 30, S: 90, G: 60},
		Sectors:     []model.Localized{l("醫療", "Healthcare"), l("科技", "Technology"), l("服務", "Services")},
		Examples:    []model.Localized{l("遠距醫療", "Telemedicine"), l("基因治療", "Gene therapy"), l("心理健康平台", "Mental health platforms"), l("健康監測設備", "Health monitoring devices")},
	},
	{
		ID:          "education_inclusion",
		Name:        l("教育與數位包容", "Education & Digital Inclusion"),
		Description: l("投資教育科技、數位素養培訓、偏鄉教育資源等促進教育平等的項目", "Edtech, digital literacy training, rural education and other projects promoting equal access to education"),
		RiskLevel:   50,
		TimeHorizon: 65,
		SDGs:        []int{4, 8, 10},
		ESGProfile:  model.TrackESG{E: 25, S: 85, G: 55},
		Sectors:     []model.Localized{l("教育", "Education"), l("科技", "Technology"), l("服務", "Services")},
		Examples:    []model.Localized{l("線上學習平台", "Online learning platforms"), l("職業培訓", "Vocational training"), l("數位教育工具", "Digital education tools"), l("教育內容平台", "Education content platforms")},
	},
	{
		ID:          "sustainable_transport",
		Name:        l("永續交通與移動", "Sustainable Transport"),
		Description: l("投資電動車、公共運輸、共享經濟等減少碳排放的交通解決方案", "Electric vehicles, public transit, shared mobility and other low-carbon transport solutions"),
		RiskLevel:   70,
		TimeHorizon: 75,
		SDGs:        []int{11, 13, 9},
		ESGProfile:  model.TrackESG{E: 85, S: 50, G: 50},
		Sectors:     []model.Localized{l("汽車", "Automotive"), l("運輸", "Transportation"), l("科技", "Technology")},
		Examples:    []model.Localized{l("電動車製造", "EV manufacturing"), l("充電基礎設施", "Charging infrastructure"), l("共享單車", "Bike sharing"), l("智慧交通系統", "Smart traffic systems")},
	},
	{
		ID:          "financial_inclusion",
		Name:        l("金融包容與社會影響", "Financial Inclusion"),
		Description: l("投資微型金融、社會住宅、性別平等等促進社會公平的項目", "Microfinance, social housing, gender equality and other projects promoting social equity"),
		RiskLevel:   40,
		TimeHorizon: 50,
		SDGs:        []int{1, 5, 8, 10, 11},
		ESGProfile:  model.TrackESG{E: 20, S: 95, G: 65},
		Sectors:     []model.Localized{l("金融", "Finance"), l("房地產", "Real estate"), l("服務", "Services")},
		Examples:    []model.Localized{l("微型貸款", "Microloans"), l("社會住宅", "Social housing"), l("女性賦權基金", "Women's empowerment funds"), l("普惠金融平台", "Inclusive finance platforms")},
	},
	{
		ID:          "biodiversity_nature",
		Name:        l("生物多樣性與自然資本", "Biodiversity & Nature"),
		Description: l("投資森林保護、生態復育、自然基礎解決方案等保護生物多樣性的項目", "Forest protection, ecosystem restoration, nature-based solutions and other biodiversity projects"),
		RiskLevel:   55,
		TimeHorizon: 80,
		SDGs:        []int{15, 13, 14},
		ESGProfile:  model.TrackESG{E: 100, S: 40, G: 45},
		Sectors:     []model.Localized{l("環保", "Environmental services"), l("農業", "Agriculture"), l("旅遊", "Tourism")},
		Examples:    []model.Localized{l("森林碳匯", "Forest carbon sinks"), l("生態旅遊", "Ecotourism"), l("自然復育", "Nature restoration"), l("生物多樣性保護基金", "Biodiversity funds")},
	},
	{
		ID:          "tech_innovation",
		Name:        l("科技與創新", "Technology & Innovation"),
		Description: l("投資人工智慧、區塊鏈、物聯網等推動永續轉型的創新科技", "AI, blockchain, IoT and other innovative technology driving the sustainability transition"),
		RiskLevel:   75,
		TimeHorizon: 70,
		SDGs:        []int{9, 11, 16},
		ESGProfile:  model.TrackESG{E: 40, S: 50, G: 70},
		Sectors:     []model.Localized{l("科技", "Technology"), l("軟體", "Software"), l("通訊", "Telecommunications")},
		Examples:    []model.Localized{l("AI 永續應用", "AI for sustainability"), l("區塊鏈溯源", "Blockchain traceability"), l("智慧城市", "Smart cities"), l("綠色數據中心", "Green data centers")},
	},
}

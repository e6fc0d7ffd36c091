package classify

// Topic pairs a label with the keywords that trigger it. Keyword lists are
// matched as lowercase substrings.
type Topic struct {
	Label    string
	Keywords []string
}

// DefaultTaxonomy is the fixed topic taxonomy in declaration order. Order
// is significant: when more topics match than the result limit allows, the
// earliest declared topics are kept.
var DefaultTaxonomy = []Topic{
	{
		Label: "Polity & Governance",
		Keywords: []string{
			"parliament", "constitution", "supreme court", "high court", "election",
			"amendment", "bill", "act", "cabinet", "president", "governor",
			"lok sabha", "rajya sabha", "judiciary", "panchayat", "governance",
			"policy", "commission", "ordinance", "regulation", "tribunal",
		},
	},
	{
		Label: "Economy",
		Keywords: []string{
			"gdp", "inflation", "rbi", "sebi", "budget", "fiscal", "monetary",
			"repo rate", "economy", "trade", "export", "import", "fdi", "msme",
			"agriculture", "msp", "niti aayog", "economic", "tax", "gst", "growth",
			"market", "rupee", "investment", "revenue", "finance", "bank",
			"insurance", "credit",
		},
	},
	{
		Label: "Environment & Ecology",
		Keywords: []string{
			"climate", "biodiversity", "forest", "wildlife", "pollution", "carbon",
			"emission", "renewable", "solar", "ozone", "ramsar", "tiger", "elephant",
			"coral", "wetland", "deforestation", "net zero", "cop", "ecology",
			"conservation", "environment", "water", "river", "drought", "flood",
			"green",
		},
	},
	{
		Label: "Science & Technology",
		Keywords: []string{
			"isro", "space", "satellite", "artificial intelligence", "quantum",
			"nuclear", "research", "technology", "5g", "semiconductor", "drone",
			"cyber", "digital", "blockchain", "genomics", "innovation", "patent",
			"rocket", "launch", "mission", "ai", "iit", "csir", "dst",
		},
	},
	{
		Label: "International Relations",
		Keywords: []string{
			"bilateral", "treaty", "summit", "united nations", "world bank", "imf",
			"wto", "g20", "brics", "sco", "asean", "nato", "geopolitics",
			"diplomacy", "foreign", "sanctions", "agreement", "alliance", "visit",
			"memorandum", "mou", "quad", "g7", "un security",
		},
	},
	{
		Label: "Social Issues",
		Keywords: []string{
			"poverty", "welfare", "education", "health", "nutrition", "women",
			"child", "tribal", "dalit", "minority", "reservation", "disability",
			"elderly", "hunger", "literacy", "inequality", "yojana", "scheme",
			"programme", "social security", "pm-kisan",
		},
	},
	{
		Label: "Defence & Security",
		Keywords: []string{
			"defence", "military", "army", "navy", "air force", "border",
			"security", "terrorism", "naxal", "insurgency", "weapon", "missile",
			"drdo", "iaf", "coast guard", "exercise", "combat", "strategic",
			"bsf", "crpf",
		},
	},
	{
		Label: "Infrastructure & Development",
		Keywords: []string{
			"railway", "highway", "port", "airport", "metro", "smart city",
			"urban", "housing", "construction", "energy", "power", "grid",
			"infrastructure", "expressway", "corridor", "project", "bridge",
			"dam", "roads", "nhsrcl",
		},
	},
}

// TopicLabels returns the taxonomy labels in declaration order.
func TopicLabels() []string {
	labels := make([]string, 0, len(DefaultTaxonomy))
	for _, t := range DefaultTaxonomy {
		labels = append(labels, t.Label)
	}
	return labels
}

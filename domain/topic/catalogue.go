package topic

// DefaultCatalogue holds the search terms the scraping pipeline ran for.
// Order matters: the first entry is preselected.
var DefaultCatalogue = MustCatalogue([]Topic{
	{Label: "Deutsches Maritimes Zentrum DMZ"},
	{Label: "Maritime Branche Deutschland"},
	{Label: "Deutsche Schifffahrt"},
	{Label: "Deutsche Seehäfen"},
	{Label: "Fachkräftemangel deutsche maritime Branche"},
	{Label: "Wettbewerbsfähigkeit deutsche maritime Branche"},
	{Label: "Demografie und Nachwuchssicherung deutsche maritime Branche"},
	{Label: "Deutsche maritime Sicherheit"},
	{Label: "KI-Methoden in maritimen Behörden Deutschlands"},
	{Label: "Maritime Förderprogramme Europa"},
	{Label: "Nachhaltigkeit und Klimawandel maritime Branche"},
	{Label: "Technologischer Wandel maritime Branche"},
	{Label: "Alternative Handelsrouten Arktis"},
	{Label: "Dekarbonisierung Schifffahrt"},
	{Label: "Alternative Treibstoffe Schifffahrt"},
	{Label: "Elon Musk"},
	{Label: "Donald Trump"},
	{
		Label:       "Dieter Janecek",
		Description: "Koordinator der Bundesregierung für die **maritime Wirtschaft** und Tourismus.",
	},
	{
		Label:       "Robert Habeck",
		Description: "Bundesminister für Wirtschaft und Klimaschutz; zuständig für die Energiewende inklusive *Offshore-Windenergie*.",
	},
	{
		Label:       "Volker Wissing",
		Description: "Bundesminister für Digitales und Verkehr; Hafenlogistik und Digitalisierung der maritimen Wirtschaft.",
	},
	{
		Label:       "Angela Titzrath",
		Description: "Vorsitzende der HHLA und Präsidentin des Zentralverbands der deutschen Seehafenbetriebe (ZDS).",
	},
	{
		Label:       "Friedrich Merz",
		Description: "Vorsitzender der CDU/CSU-Fraktion im Bundestag.",
	},
	{
		Label:       "Maritime Agenda 2025",
		Description: "Langfriststrategie der Bundesregierung für Forschung und Innovation in der maritimen Wirtschaft.",
	},
	{
		Label:       "Maritime Energiewende",
		Description: "Senkung der Treibhausgasemissionen in der Schifffahrt, etwa durch LNG- und Batterieantriebe.",
	},
	{
		Label:       "Offshore-Windkraft",
		Description: "Ausbau der Offshore-Windparks und die Chancen für die maritime Wirtschaft.",
	},
	{
		Label:       "Maritime Digitalisierung",
		Description: "Digitale Technologien in der Schifffahrt (\"Maritim 4.0\").",
	},
	{
		Label:       "Maritime Sicherheit",
		Description: "Sicherung der Seewege und Schutz vor maritimen Bedrohungen.",
	},
	{
		Label:       "Schiffbauzulieferer",
		Description: "Die Zulieferindustrie im Schiffbau im internationalen Wettbewerb.",
	},
	{
		Label:       "Maritime Messen und Kongresse",
		Description: "Veranstaltungen wie die [SMM](https://www.smm-hamburg.com) in Hamburg.",
	},
	{
		Label:       "Hafenentwicklung und -logistik",
		Description: "Wettbewerbsfähigkeit deutscher Häfen und Optimierung logistischer Prozesse.",
	},
})

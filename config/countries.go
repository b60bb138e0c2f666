// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package config

// DefaultAliases returns a new map from JHU CSSE country names to the names
// used by World Bank indicator data. Countries mapped to the empty string
// (cruise ships, territories the World Bank doesn't list separately) have no
// population counterpart.
func DefaultAliases() map[string]string {
	return map[string]string{
		"Bahamas":                          "Bahamas, The",
		"Brunei":                           "Brunei Darussalam",
		"Burma":                            "Myanmar",
		"Congo (Brazzaville)":              "Congo, Rep.",
		"Congo (Kinshasa)":                 "Congo, Dem. Rep.",
		"Czechia":                          "Czech Republic",
		"Diamond Princess":                 "",
		"Egypt":                            "Egypt, Arab Rep.",
		"Gambia":                           "Gambia, The",
		"Holy See":                         "",
		"Iran":                             "Iran, Islamic Rep.",
		"Korea, South":                     "Korea, Rep.",
		"Kyrgyzstan":                       "Kyrgyz Republic",
		"Laos":                             "Lao PDR",
		"MS Zaandam":                       "",
		"Russia":                           "Russian Federation",
		"Saint Kitts and Nevis":            "St. Kitts and Nevis",
		"Saint Lucia":                      "St. Lucia",
		"Saint Vincent and the Grenadines": "St. Vincent and the Grenadines",
		"Slovakia":                         "Slovak Republic",
		"Syria":                            "Syrian Arab Republic",
		"Taiwan*":                          "", // not classified separately by the World Bank
		"US":                               "United States",
		"Venezuela":                        "Venezuela, RB",
		"Western Sahara":                   "",
		"Yemen":                            "Yemen, Rep.",
	}
}

// DefaultRegions returns the regions charted when none are configured.
func DefaultRegions() []Region {
	return []Region{
		{"Asia", []string{"Bahrain", "Singapore"}},
		{"Europe", []string{"United Kingdom", "Germany", "Italy", "Sweden"}},
		{"Oceania", []string{"New Zealand", "Australia"}},
		{"South America", []string{"Argentina", "Brazil", "Ecuador"}},
	}
}

package roster

// defaultAllStars is the 2025-26 season All-Star registry. Refresh at the
// start of each season from the prior season's All-Star selections,
// All-NBA teams and MVP ballots.
var defaultAllStars = []string{
	// Eastern Conference
	"Giannis Antetokounmpo",
	"Joel Embiid",
	"Jayson Tatum",
	"Jaylen Brown",
	"Damian Lillard",
	"Donovan Mitchell",
	"Darius Garland",
	"Trae Young",
	"Jimmy Butler",
	"Bam Adebayo",
	"Tyrese Haliburton",
	"Paolo Banchero",
	"Franz Wagner",
	"Jalen Brunson",
	"Julius Randle",
	"Scottie Barnes",
	"DeMar DeRozan",
	"LaMelo Ball",
	"Cade Cunningham",

	// Western Conference
	"Nikola Jokic",
	"Luka Doncic",
	"Shai Gilgeous-Alexander",
	"Kevin Durant",
	"Devin Booker",
	"Stephen Curry",
	"LeBron James",
	"Anthony Davis",
	"Kawhi Leonard",
	"Paul George",
	"Anthony Edwards",
	"Karl-Anthony Towns",
	"Ja Morant",
	"Zion Williamson",
	"Brandon Ingram",
	"Domantas Sabonis",
	"De'Aaron Fox",
	"Victor Wembanyama",
	"Alperen Sengun",
	"Lauri Markkanen",

	// Rising stars and consistent selections
	"Tyrese Maxey",
	"Desmond Bane",
	"Jaren Jackson Jr.",
	"Evan Mobley",
	"Jalen Williams",
	"Mikal Bridges",
	"OG Anunoby",
	"Kristaps Porzingis",
}

// defaultAliases resolves common feed spellings and nicknames to registry
// names. Both sides are normalized when loaded.
var defaultAliases = map[string]string{
	"LeBron Raymone James": "LeBron James",
	"Steph Curry":          "Stephen Curry",
	"Wardell Curry":        "Stephen Curry",
	"Luka Dončić":          "Luka Doncic",
	"Nikola Jokić":         "Nikola Jokic",
	"Kristaps Porziņģis":   "Kristaps Porzingis",
	"Alperen Şengün":       "Alperen Sengun",
	"Shai Gilgeous Alexander": "Shai Gilgeous-Alexander",
	"Jaren Jackson":           "Jaren Jackson Jr.",
	"KAT":                     "Karl-Anthony Towns",
}

package feed

import (
	"strings"

	"github.com/hooplens/eloedge/internal/domain/model"
)

// teamInfo holds the lookup names for one franchise.
type teamInfo struct {
	id       model.TeamID
	fullName string
	abbrev   string
	nickname string
	city     string
}

// Static franchise table keyed by the league's canonical numeric ids.
// Updated only on expansion or relocation.
var teamTable = []teamInfo{
	{1610612737, "Atlanta Hawks", "ATL", "Hawks", "Atlanta"},
	{1610612738, "Boston Celtics", "BOS", "Celtics", "Boston"},
	{1610612739, "Cleveland Cavaliers", "CLE", "Cavaliers", "Cleveland"},
	{1610612740, "New Orleans Pelicans", "NOP", "Pelicans", "New Orleans"},
	{1610612741, "Chicago Bulls", "CHI", "Bulls", "Chicago"},
	{1610612742, "Dallas Mavericks", "DAL", "Mavericks", "Dallas"},
	{1610612743, "Denver Nuggets", "DEN", "Nuggets", "Denver"},
	{1610612744, "Golden State Warriors", "GSW", "Warriors", "Golden State"},
	{1610612745, "Houston Rockets", "HOU", "Rockets", "Houston"},
	{1610612746, "Los Angeles Clippers", "LAC", "Clippers", "Los Angeles"},
	{1610612747, "Los Angeles Lakers", "LAL", "Lakers", "Los Angeles"},
	{1610612748, "Miami Heat", "MIA", "Heat", "Miami"},
	{1610612749, "Milwaukee Bucks", "MIL", "Bucks", "Milwaukee"},
	{1610612750, "Minnesota Timberwolves", "MIN", "Timberwolves", "Minnesota"},
	{1610612751, "Brooklyn Nets", "BKN", "Nets", "Brooklyn"},
	{1610612752, "New York Knicks", "NYK", "Knicks", "New York"},
	{1610612753, "Orlando Magic", "ORL", "Magic", "Orlando"},
	{1610612754, "Indiana Pacers", "IND", "Pacers", "Indiana"},
	{1610612755, "Philadelphia 76ers", "PHI", "76ers", "Philadelphia"},
	{1610612756, "Phoenix Suns", "PHX", "Suns", "Phoenix"},
	{1610612757, "Portland Trail Blazers", "POR", "Trail Blazers", "Portland"},
	{1610612758, "Sacramento Kings", "SAC", "Kings", "Sacramento"},
	{1610612759, "San Antonio Spurs", "SAS", "Spurs", "San Antonio"},
	{1610612760, "Oklahoma City Thunder", "OKC", "Thunder", "Oklahoma City"},
	{1610612761, "Toronto Raptors", "TOR", "Raptors", "Toronto"},
	{1610612762, "Utah Jazz", "UTA", "Jazz", "Utah"},
	{1610612763, "Memphis Grizzlies", "MEM", "Grizzlies", "Memphis"},
	{1610612764, "Washington Wizards", "WAS", "Wizards", "Washington"},
	{1610612765, "Detroit Pistons", "DET", "Pistons", "Detroit"},
	{1610612766, "Charlotte Hornets", "CHA", "Hornets", "Charlotte"},
}

// Feed spellings that differ from the canonical table.
var teamAliases = map[string]string{
	"la clippers": "los angeles clippers",
	"la lakers":   "los angeles lakers",
}

// TeamMapper resolves feed team names to canonical ids.
type TeamMapper struct {
	byName map[string]model.TeamID
	byID   map[model.TeamID]string
}

// NewTeamMapper builds a mapper from the static franchise table.
func NewTeamMapper() *TeamMapper {
	m := &TeamMapper{
		byName: make(map[string]model.TeamID, len(teamTable)*4),
		byID:   make(map[model.TeamID]string, len(teamTable)),
	}
	for _, t := range teamTable {
		m.byID[t.id] = t.fullName
		for _, name := range []string{t.fullName, t.abbrev, t.nickname, t.city} {
			key := normalizeTeamName(name)
			// City collides for the two Los Angeles teams; first entry wins
			// and full names stay authoritative.
			if _, exists := m.byName[key]; !exists {
				m.byName[key] = t.id
			}
		}
	}
	return m
}

func normalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TeamID resolves a team name (full name, abbreviation, nickname or city)
// to its canonical id.
func (m *TeamMapper) TeamID(name string) (model.TeamID, bool) {
	key := normalizeTeamName(name)
	if alias, ok := teamAliases[key]; ok {
		key = alias
	}
	id, ok := m.byName[key]
	return id, ok
}

// TeamName returns the full franchise name for an id.
func (m *TeamMapper) TeamName(id model.TeamID) (string, bool) {
	name, ok := m.byID[id]
	return name, ok
}

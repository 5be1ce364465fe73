package roster

import "sort"

// Game is one scheduled or completed league game from the schedule feed.
type Game struct {
	Date      string `json:"date"`
	Round     string `json:"round,omitempty"`
	Venue     string `json:"venue,omitempty"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score,omitempty"`
	AwayScore int    `json:"away_score,omitempty"`
	Played    bool   `json:"played"`
}

// TeamGame is a Game seen from one team's side, as attached to a player.
type TeamGame struct {
	Game

	Opponent      string `json:"opponent"`
	HomeAway      string `json:"home_away"`
	TeamScore     int    `json:"team_score,omitempty"`
	OpponentScore int    `json:"opponent_score,omitempty"`
	Result        string `json:"result,omitempty"` // "W" or "L", played games only
}

// AttachSchedule fills PastGames and UpcomingGames on each record from the
// league schedule, matched by team name. Past games are ordered most recent
// first, upcoming games soonest first. Like Join it is pure: records are
// modified in place but the inputs are otherwise untouched.
func AttachSchedule(records []UnifiedRecord, games []Game) {
	if len(games) == 0 {
		return
	}

	past := make(map[string][]TeamGame)
	upcoming := make(map[string][]TeamGame)

	for _, g := range games {
		for _, side := range teamSides(g) {
			target := upcoming
			if g.Played {
				target = past
			}
			target[side.team] = append(target[side.team], side.view)
		}
	}

	for team := range past {
		games := past[team]
		sort.SliceStable(games, func(i, j int) bool { return games[i].Date > games[j].Date })
	}
	for team := range upcoming {
		games := upcoming[team]
		sort.SliceStable(games, func(i, j int) bool { return games[i].Date < games[j].Date })
	}

	for i := range records {
		records[i].PastGames = past[records[i].Team]
		records[i].UpcomingGames = upcoming[records[i].Team]
	}
}

type teamSide struct {
	team string
	view TeamGame
}

// teamSides expands a game into the home and away teams' views of it.
func teamSides(g Game) []teamSide {
	sides := make([]teamSide, 0, 2)

	if g.HomeTeam != "" {
		sides = append(sides, teamSide{
			team: g.HomeTeam,
			view: TeamGame{
				Game:          g,
				Opponent:      g.AwayTeam,
				HomeAway:      "Home",
				TeamScore:     g.HomeScore,
				OpponentScore: g.AwayScore,
				Result:        result(g.Played, g.HomeScore, g.AwayScore),
			},
		})
	}
	if g.AwayTeam != "" {
		sides = append(sides, teamSide{
			team: g.AwayTeam,
			view: TeamGame{
				Game:          g,
				Opponent:      g.HomeTeam,
				HomeAway:      "Away",
				TeamScore:     g.AwayScore,
				OpponentScore: g.HomeScore,
				Result:        result(g.Played, g.AwayScore, g.HomeScore),
			},
		})
	}

	return sides
}

func result(played bool, teamScore, opponentScore int) string {
	if !played {
		return ""
	}
	if teamScore > opponentScore {
		return "W"
	}
	return "L"
}

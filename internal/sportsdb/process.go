package sportsdb

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmarrero/acbtrack/internal/roster"
)

func convertTeams(raw []rawTeam) []Team {
	teams := make([]Team, 0, len(raw))
	for _, t := range raw {
		teams = append(teams, convertTeam(t))
	}
	return teams
}

func convertTeam(raw rawTeam) Team {
	return Team{
		ID:       raw.ID,
		Name:     raw.Name,
		BadgeURL: raw.Badge,
		LogoURL:  raw.Logo,
	}
}

// convertPlayer maps a raw API player onto a roster record, stamped with
// the team it was fetched under.
func convertPlayer(raw rawPlayer, team Team) roster.PlayerRecord {
	cm, feet, inches := parseHeight(raw.Height)

	headshot := raw.Thumb
	if headshot == "" {
		headshot = raw.Cutout
	}

	birthDate := raw.BirthDate
	if len(birthDate) > 10 {
		birthDate = birthDate[:10]
	}

	return roster.PlayerRecord{
		Code:          raw.ID,
		Name:          strings.TrimSpace(raw.Name),
		Team:          team.Name,
		TeamCode:      team.ID,
		Position:      raw.Position,
		Jersey:        raw.Number,
		Nationality:   raw.Nationality,
		BirthDate:     birthDate,
		BirthLocation: raw.BirthLocation,
		HeightCm:      cm,
		HeightFeet:    feet,
		HeightInches:  inches,
		Weight:        raw.Weight,
		HeadshotURL:   headshot,
		Instagram:     raw.Instagram,
		Twitter:       raw.Twitter,
	}
}

// convertGame maps a raw API event onto a schedule game. A game counts as
// played once both scores are present.
func convertGame(raw rawEvent) roster.Game {
	homeScore, homeOK := parseScore(raw.HomeScore)
	awayScore, awayOK := parseScore(raw.AwayScore)

	return roster.Game{
		Date:      raw.Date,
		Round:     raw.Round,
		Venue:     raw.Venue,
		HomeTeam:  raw.HomeTeam,
		AwayTeam:  raw.AwayTeam,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Played:    homeOK && awayOK,
	}
}

func parseScore(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MatchesNationality reports whether a player's nationality string matches
// the tracked nationality. "United States" also accepts the common aliases
// the API uses interchangeably.
func MatchesNationality(nationality, target string) bool {
	n := strings.ToLower(strings.TrimSpace(nationality))
	if n == "" {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(target))
	if n == t {
		return true
	}
	if t == "united states" {
		return n == "usa" || n == "american"
	}
	return false
}

// parseHeight parses the API's height strings, which come in metric
// ("2.01 m") and imperial ("6 ft 7 in") flavors, into centimeters plus a
// feet/inches pair. Unparseable strings yield zeros.
func parseHeight(s string) (cm, feet, inches int) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0, 0, 0
	}

	switch {
	case strings.Contains(lower, "ft"):
		parts := strings.Fields(strings.NewReplacer("ft", " ", "in", " ").Replace(lower))
		if len(parts) < 2 {
			return 0, 0, 0
		}
		ft, err1 := strconv.Atoi(parts[0])
		in, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, 0, 0
		}
		cm = int(float64(ft*12+in) * 2.54)
	case strings.Contains(lower, "m"):
		meters, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(lower, "m")), 64)
		if err != nil {
			return 0, 0, 0
		}
		cm = int(meters * 100)
	default:
		return 0, 0, 0
	}

	totalInches := float64(cm) / 2.54
	feet = int(totalInches) / 12
	inches = int(math.Round(math.Mod(totalInches, 12)))
	if inches == 12 {
		feet++
		inches = 0
	}
	return cm, feet, inches
}

package sportsdb

// Raw envelopes mirroring TheSportsDB v1 JSON responses. The API returns
// JSON null instead of an empty array when nothing matches, which decodes
// to a nil slice here.

type teamsEnvelope struct {
	Teams []rawTeam `json:"teams"`
}

type playersEnvelope struct {
	Player []rawPlayer `json:"player"`
}

type eventsEnvelope struct {
	Events []rawEvent `json:"events"`
}

type rawTeam struct {
	ID      string `json:"idTeam"`
	Name    string `json:"strTeam"`
	Sport   string `json:"strSport"`
	Country string `json:"strCountry"`
	Badge   string `json:"strBadge"`
	Logo    string `json:"strLogo"`
}

type rawPlayer struct {
	ID            string `json:"idPlayer"`
	Name          string `json:"strPlayer"`
	Nationality   string `json:"strNationality"`
	BirthDate     string `json:"dateBorn"`
	BirthLocation string `json:"strBirthLocation"`
	Height        string `json:"strHeight"`
	Weight        string `json:"strWeight"`
	Position      string `json:"strPosition"`
	Number        string `json:"strNumber"`
	Thumb         string `json:"strThumb"`
	Cutout        string `json:"strCutout"`
	Instagram     string `json:"strInstagram"`
	Twitter       string `json:"strTwitter"`
}

type rawEvent struct {
	ID        string `json:"idEvent"`
	Date      string `json:"dateEvent"`
	Round     string `json:"intRound"`
	Venue     string `json:"strVenue"`
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	HomeScore string `json:"intHomeScore"`
	AwayScore string `json:"intAwayScore"`
}

// Team is a league club as exposed to the pipeline.
type Team struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BadgeURL string `json:"badge_url,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

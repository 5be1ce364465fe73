package roster

// Match confidence values recorded on UnifiedRecord.
const (
	MatchExact     = "exact"
	MatchUnmatched = "unmatched"
)

// PlayerRecord is a canonical roster entry from the sports API.
// Records are immutable once produced by the fetcher; a record with an
// empty Name is malformed and is skipped by the joiner.
type PlayerRecord struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Team          string `json:"team"`
	TeamCode      string `json:"team_code,omitempty"`
	Position      string `json:"position,omitempty"`
	Jersey        string `json:"jersey,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	BirthDate     string `json:"birth_date,omitempty"`
	BirthLocation string `json:"birth_location,omitempty"`
	HeightCm      int    `json:"height_cm,omitempty"`
	HeightFeet    int    `json:"height_feet,omitempty"`
	HeightInches  int    `json:"height_inches,omitempty"`
	Weight        string `json:"weight,omitempty"`
	HeadshotURL   string `json:"headshot_url,omitempty"`
	Instagram     string `json:"instagram,omitempty"`
	Twitter       string `json:"twitter,omitempty"`
}

// SupplementalRecord holds best-effort biographical attributes for one
// player, looked up from an encyclopedia page. Any attribute may be empty;
// Partial marks a lookup that found the player but not every attribute.
type SupplementalRecord struct {
	Name          string `json:"name"`
	SourceURL     string `json:"source_url,omitempty"`
	HometownCity  string `json:"hometown_city,omitempty"`
	HometownState string `json:"hometown_state,omitempty"`
	HighSchool    string `json:"high_school,omitempty"`
	College       string `json:"college,omitempty"`
	Partial       bool   `json:"partial,omitempty"`
}

// UnifiedRecord is the merged record the dashboard reads. Supplemental
// fields stay empty for unmatched players; MatchConfidence records whether
// a supplement was found.
type UnifiedRecord struct {
	PlayerRecord

	HometownCity    string `json:"hometown_city,omitempty"`
	HometownState   string `json:"hometown_state,omitempty"`
	Hometown        string `json:"hometown,omitempty"`
	HighSchool      string `json:"high_school,omitempty"`
	College         string `json:"college,omitempty"`
	SourceURL       string `json:"bio_source_url,omitempty"`
	MatchConfidence string `json:"match_confidence"`

	PastGames     []TeamGame `json:"past_games,omitempty"`
	UpcomingGames []TeamGame `json:"upcoming_games,omitempty"`
}

package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/dmarrero/acbtrack/internal/config"
	"github.com/dmarrero/acbtrack/internal/roster"
)

// UserAgent identifies the fetcher to TheSportsDB.
const UserAgent = "acbtrack/1.0 (github.com/dmarrero/acbtrack)"

// fallbackTeams are searched one by one when the league team lookup comes
// back empty, which happens intermittently on the free tier.
var fallbackTeams = []string{
	"Real Madrid Baloncesto", "Barcelona Basquet", "Valencia Basket",
	"Unicaja", "Baskonia", "Joventut Badalona", "Bilbao Basket",
	"Gran Canaria", "Zaragoza Basket", "Manresa", "Murcia",
	"Girona", "Breogan", "Granada", "Andorra", "Fuenlabrada",
}

// Client fetches teams, players, and the season schedule from TheSportsDB.
type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueName string
	leagueID   string
	season     string
	delay      time.Duration
	maxElapsed time.Duration
	logger     zerolog.Logger
}

// NewClient creates a Client from the run configuration.
func NewClient(cfg config.Config, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/") + "/" + cfg.APIKey,
		leagueName: cfg.LeagueName,
		leagueID:   cfg.LeagueID,
		season:     cfg.Season,
		delay:      cfg.RequestDelay,
		maxElapsed: cfg.MaxElapsedTime,
		logger:     logger.With().Str("component", "sportsdb").Logger(),
	}
}

// Teams fetches the league's clubs, falling back to individual team
// searches when the league lookup returns nothing.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var envelope teamsEnvelope
	err := c.getJSON(ctx, "/search_all_teams.php", url.Values{"l": {c.leagueName}}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetching league teams: %w", err)
	}

	if len(envelope.Teams) > 0 {
		c.logger.Info().Int("teams", len(envelope.Teams)).Msg("fetched clubs")
		return convertTeams(envelope.Teams), nil
	}

	c.logger.Warn().Msg("league lookup empty, trying fallback team search")
	return c.searchFallbackTeams(ctx)
}

// searchFallbackTeams looks up each known club by name, keeping the first
// Spanish basketball hit per search.
func (c *Client) searchFallbackTeams(ctx context.Context) ([]Team, error) {
	teams := make([]Team, 0, len(fallbackTeams))
	for _, name := range fallbackTeams {
		var envelope teamsEnvelope
		if err := c.getJSON(ctx, "/searchteams.php", url.Values{"t": {name}}, &envelope); err != nil {
			c.logger.Warn().Err(err).Str("team", name).Msg("fallback search failed")
			continue
		}
		for _, raw := range envelope.Teams {
			if raw.Sport == "Basketball" && raw.Country == "Spain" {
				teams = append(teams, convertTeam(raw))
				break
			}
		}
		if err := c.pause(ctx); err != nil {
			return nil, err
		}
	}
	c.logger.Info().Int("teams", len(teams)).Msg("fetched clubs via fallback search")
	return teams, nil
}

// PlayersForTeam fetches one team's roster. Records without a name are
// dropped so downstream stages only ever see identified players.
func (c *Client) PlayersForTeam(ctx context.Context, team Team) ([]roster.PlayerRecord, error) {
	var envelope playersEnvelope
	if err := c.getJSON(ctx, "/lookup_all_players.php", url.Values{"id": {team.ID}}, &envelope); err != nil {
		return nil, fmt.Errorf("fetching players for %s: %w", team.Name, err)
	}

	players := make([]roster.PlayerRecord, 0, len(envelope.Player))
	for _, raw := range envelope.Player {
		if strings.TrimSpace(raw.Name) == "" {
			c.logger.Warn().Str("team", team.Name).Str("id", raw.ID).Msg("player without name, dropped")
			continue
		}
		players = append(players, convertPlayer(raw, team))
	}

	c.logger.Debug().Str("team", team.Name).Int("players", len(players)).Msg("fetched roster")
	return players, nil
}

// Players fetches every team's roster sequentially with a polite delay
// between teams.
func (c *Client) Players(ctx context.Context, teams []Team) ([]roster.PlayerRecord, error) {
	var all []roster.PlayerRecord
	for _, team := range teams {
		if team.ID == "" {
			continue
		}
		players, err := c.PlayersForTeam(ctx, team)
		if err != nil {
			return nil, err
		}
		all = append(all, players...)
		if err := c.pause(ctx); err != nil {
			return nil, err
		}
	}
	c.logger.Info().Int("players", len(all)).Msg("fetched players")
	return all, nil
}

// Schedule fetches the season's games, retrying with the previous season
// when the configured one has no events yet.
func (c *Client) Schedule(ctx context.Context) ([]roster.Game, error) {
	games, err := c.seasonEvents(ctx, c.season)
	if err != nil {
		return nil, err
	}
	if len(games) > 0 {
		return games, nil
	}

	previous := previousSeason(c.season)
	if previous == "" {
		return nil, nil
	}
	c.logger.Warn().Str("season", c.season).Str("fallback", previous).Msg("no events for season, trying previous")
	return c.seasonEvents(ctx, previous)
}

func (c *Client) seasonEvents(ctx context.Context, season string) ([]roster.Game, error) {
	var envelope eventsEnvelope
	err := c.getJSON(ctx, "/eventsseason.php", url.Values{"id": {c.leagueID}, "s": {season}}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule for %s: %w", season, err)
	}

	games := make([]roster.Game, 0, len(envelope.Events))
	for _, raw := range envelope.Events {
		games = append(games, convertGame(raw))
	}
	c.logger.Info().Str("season", season).Int("games", len(games)).Msg("fetched schedule")
	return games, nil
}

// getJSON performs one API GET with exponential-backoff retry on transient
// failures. Client errors other than 429 are permanent.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", endpoint, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to decode
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("%s: unexpected status code: %d", endpoint, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("%s: unexpected status code: %d", endpoint, resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding %s response: %w", endpoint, err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.maxElapsed
	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

// pause sleeps for the configured request delay, honoring cancellation.
func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}

// previousSeason turns "2025-2026" into "2024-2025". Returns "" for
// seasons not in that format.
func previousSeason(season string) string {
	parts := strings.Split(season, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return ""
	}
	var start, end int
	if _, err := fmt.Sscanf(season, "%d-%d", &start, &end); err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", start-1, end-1)
}

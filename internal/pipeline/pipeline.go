package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmarrero/acbtrack/internal/config"
	"github.com/dmarrero/acbtrack/internal/roster"
	"github.com/dmarrero/acbtrack/internal/sportsdb"
	"github.com/dmarrero/acbtrack/internal/storage"
	"github.com/dmarrero/acbtrack/internal/wiki"
)

// Fetcher is the source-record boundary the pipeline depends on.
type Fetcher interface {
	Teams(ctx context.Context) ([]sportsdb.Team, error)
	Players(ctx context.Context, teams []sportsdb.Team) ([]roster.PlayerRecord, error)
	Schedule(ctx context.Context) ([]roster.Game, error)
}

// Resolver is the supplemental-lookup boundary the pipeline depends on.
type Resolver interface {
	ResolveAll(ctx context.Context, players []roster.PlayerRecord) ([]roster.SupplementalRecord, error)
}

// RunReport summarizes one join for the CLI.
type RunReport struct {
	JoinedAt    time.Time `json:"joined_at"`
	Players     int       `json:"players"`
	Matched     int       `json:"matched"`
	Unmatched   int       `json:"unmatched"`
	WithGames   int       `json:"with_games"`
	Warnings    []string  `json:"warnings,omitempty"`
	UnifiedFile string    `json:"unified_file"`
}

// Pipeline runs the three stages against stage-file storage.
type Pipeline struct {
	cfg      config.Config
	store    *storage.Storage
	fetcher  Fetcher
	resolver Resolver
	logger   zerolog.Logger
}

// New assembles a pipeline with the real fetcher and resolver.
func New(cfg config.Config, store *storage.Storage, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		fetcher:  sportsdb.NewClient(cfg, logger),
		resolver: wiki.NewResolver(cfg, logger),
		logger:   logger.With().Str("component", "pipeline").Logger(),
	}
}

// NewWithCollaborators assembles a pipeline around explicit collaborators.
func NewWithCollaborators(cfg config.Config, store *storage.Storage, fetcher Fetcher, resolver Resolver, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		resolver: resolver,
		logger:   logger.With().Str("component", "pipeline").Logger(),
	}
}

// Fetch pulls teams, rosters, and the schedule from the sports API and
// writes the players and schedule stages. A league with no teams at all is
// fatal; a roster with no tracked-nationality players is a valid empty stage.
func (p *Pipeline) Fetch(ctx context.Context) error {
	teams, err := p.fetcher.Teams(ctx)
	if err != nil {
		return fmt.Errorf("fetch stage: %w", err)
	}
	if len(teams) == 0 {
		return fmt.Errorf("fetch stage: no teams found for league %q", p.cfg.LeagueName)
	}

	players, err := p.fetcher.Players(ctx, teams)
	if err != nil {
		return fmt.Errorf("fetch stage: %w", err)
	}

	tracked := make([]roster.PlayerRecord, 0, len(players))
	for _, player := range players {
		if sportsdb.MatchesNationality(player.Nationality, p.cfg.Nationality) {
			tracked = append(tracked, player)
		}
	}
	if len(tracked) == 0 {
		p.logger.Warn().Str("nationality", p.cfg.Nationality).Msg("no players matched the tracked nationality")
	}

	if err := p.store.SaveStage(storage.StagePlayers, tracked); err != nil {
		return fmt.Errorf("fetch stage: %w", err)
	}
	p.logger.Info().Int("total", len(players)).Int("tracked", len(tracked)).Msg("players stage written")

	games, err := p.fetcher.Schedule(ctx)
	if err != nil {
		// The schedule enriches the join but isn't required by it.
		p.logger.Warn().Err(err).Msg("schedule fetch failed, continuing without it")
		games = nil
	}
	if err := p.store.SaveStage(storage.StageSchedule, games); err != nil {
		return fmt.Errorf("fetch stage: %w", err)
	}
	p.logger.Info().Int("games", len(games)).Msg("schedule stage written")

	return nil
}

// Resolve looks up supplemental attributes for every fetched player and
// writes the supplements stage. It is fatal when the players stage has
// never been produced.
func (p *Pipeline) Resolve(ctx context.Context) error {
	var players []roster.PlayerRecord
	if err := p.store.LoadLatest(storage.StagePlayers, &players); err != nil {
		if errors.Is(err, storage.ErrNoStage) {
			return fmt.Errorf("resolve stage: players stage missing, run fetch first: %w", err)
		}
		return fmt.Errorf("resolve stage: %w", err)
	}

	supplements, err := p.resolver.ResolveAll(ctx, players)
	if err != nil {
		return fmt.Errorf("resolve stage: %w", err)
	}

	if err := p.store.SaveStage(storage.StageSupplements, supplements); err != nil {
		return fmt.Errorf("resolve stage: %w", err)
	}
	p.logger.Info().Int("supplements", len(supplements)).Msg("supplements stage written")
	return nil
}

// Join merges the players and supplements stages into the unified stage and
// attaches team schedules. Missing players stage is fatal; missing
// supplements or schedule stages degrade to an empty input with a warning.
func (p *Pipeline) Join(ctx context.Context) (*RunReport, error) {
	var players []roster.PlayerRecord
	if err := p.store.LoadLatest(storage.StagePlayers, &players); err != nil {
		if errors.Is(err, storage.ErrNoStage) {
			return nil, fmt.Errorf("join stage: players stage missing, run fetch first: %w", err)
		}
		return nil, fmt.Errorf("join stage: %w", err)
	}

	var supplements []roster.SupplementalRecord
	if err := p.store.LoadLatest(storage.StageSupplements, &supplements); err != nil {
		if !errors.Is(err, storage.ErrNoStage) {
			return nil, fmt.Errorf("join stage: %w", err)
		}
		p.logger.Warn().Msg("supplements stage missing, joining without supplemental data")
	}

	var games []roster.Game
	if err := p.store.LoadLatest(storage.StageSchedule, &games); err != nil {
		if !errors.Is(err, storage.ErrNoStage) {
			return nil, fmt.Errorf("join stage: %w", err)
		}
		p.logger.Warn().Msg("schedule stage missing, joining without games")
	}

	unified, warnings := roster.Join(players, supplements)
	for _, warning := range warnings {
		p.logger.Warn().Msg(warning)
	}
	roster.AttachSchedule(unified, games)

	if err := p.store.SaveStage(storage.StageUnified, unified); err != nil {
		return nil, fmt.Errorf("join stage: %w", err)
	}

	report := &RunReport{
		JoinedAt:    time.Now().UTC(),
		Players:     len(unified),
		Warnings:    warnings,
		UnifiedFile: storage.StageUnified + "_latest.json",
	}
	for _, rec := range unified {
		if rec.MatchConfidence == roster.MatchExact {
			report.Matched++
		} else {
			report.Unmatched++
		}
		if len(rec.PastGames)+len(rec.UpcomingGames) > 0 {
			report.WithGames++
		}
	}

	p.logger.Info().
		Int("players", report.Players).
		Int("matched", report.Matched).
		Int("unmatched", report.Unmatched).
		Msg("unified stage written")
	return report, nil
}

// Run executes fetch, resolve, and join in sequence.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	if err := p.Fetch(ctx); err != nil {
		return nil, err
	}
	if err := p.Resolve(ctx); err != nil {
		return nil, err
	}
	return p.Join(ctx)
}

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmarrero/acbtrack/internal/config"
	"github.com/dmarrero/acbtrack/internal/roster"
	"github.com/dmarrero/acbtrack/internal/sportsdb"
	"github.com/dmarrero/acbtrack/internal/storage"
)

type fakeFetcher struct {
	teams    []sportsdb.Team
	players  []roster.PlayerRecord
	games    []roster.Game
	teamsErr error
	schedErr error
}

func (f *fakeFetcher) Teams(ctx context.Context) ([]sportsdb.Team, error) {
	return f.teams, f.teamsErr
}

func (f *fakeFetcher) Players(ctx context.Context, teams []sportsdb.Team) ([]roster.PlayerRecord, error) {
	return f.players, nil
}

func (f *fakeFetcher) Schedule(ctx context.Context) ([]roster.Game, error) {
	return f.games, f.schedErr
}

type fakeResolver struct {
	supplements []roster.SupplementalRecord
	err         error
}

func (f *fakeResolver) ResolveAll(ctx context.Context, players []roster.PlayerRecord) ([]roster.SupplementalRecord, error) {
	return f.supplements, f.err
}

func newTestPipeline(t *testing.T, fetcher Fetcher, resolver Resolver) (*Pipeline, *storage.Storage) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	cfg := config.New()
	return NewWithCollaborators(cfg, store, fetcher, resolver, zerolog.Nop()), store
}

func TestRunProducesUnifiedStage(t *testing.T) {
	fetcher := &fakeFetcher{
		teams: []sportsdb.Team{{ID: "1", Name: "Real Madrid"}},
		players: []roster.PlayerRecord{
			{Code: "1", Name: "John Doe", Team: "Real Madrid", Nationality: "United States"},
			{Code: "2", Name: "Pau Local", Team: "Real Madrid", Nationality: "Spain"},
		},
		games: []roster.Game{
			{Date: "2026-01-10", HomeTeam: "Real Madrid", AwayTeam: "Baskonia", HomeScore: 90, AwayScore: 82, Played: true},
		},
	}
	resolver := &fakeResolver{
		supplements: []roster.SupplementalRecord{
			{Name: "john doe", HometownCity: "Springfield", HometownState: "IL"},
		},
	}

	p, store := newTestPipeline(t, fetcher, resolver)

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Only the tracked-nationality player flows through.
	if report.Players != 1 || report.Matched != 1 || report.Unmatched != 0 {
		t.Errorf("unexpected report: %+v", report)
	}

	var unified []roster.UnifiedRecord
	if err := store.LoadLatest(storage.StageUnified, &unified); err != nil {
		t.Fatalf("loading unified stage: %v", err)
	}
	if len(unified) != 1 {
		t.Fatalf("expected 1 unified record, got %d", len(unified))
	}
	rec := unified[0]
	if rec.Name != "John Doe" || rec.Hometown != "Springfield, IL" {
		t.Errorf("unexpected unified record: %+v", rec)
	}
	if len(rec.PastGames) != 1 || rec.PastGames[0].Result != "W" {
		t.Errorf("expected schedule attached: %+v", rec.PastGames)
	}
}

func TestFetchFatalWhenNoTeams(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeFetcher{}, &fakeResolver{})

	err := p.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected fatal error when league has no teams")
	}
	if !strings.Contains(err.Error(), "no teams") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetchEmptyTrackedRosterIsValid(t *testing.T) {
	fetcher := &fakeFetcher{
		teams: []sportsdb.Team{{ID: "1", Name: "Real Madrid"}},
		players: []roster.PlayerRecord{
			{Code: "2", Name: "Pau Local", Team: "Real Madrid", Nationality: "Spain"},
		},
	}
	p, store := newTestPipeline(t, fetcher, &fakeResolver{})

	if err := p.Fetch(context.Background()); err != nil {
		t.Fatalf("an empty tracked roster should not be fatal: %v", err)
	}

	var players []roster.PlayerRecord
	if err := store.LoadLatest(storage.StagePlayers, &players); err != nil {
		t.Fatalf("loading players stage: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("expected empty players stage, got %+v", players)
	}
}

func TestFetchContinuesWhenScheduleFails(t *testing.T) {
	fetcher := &fakeFetcher{
		teams: []sportsdb.Team{{ID: "1", Name: "Real Madrid"}},
		players: []roster.PlayerRecord{
			{Code: "1", Name: "John Doe", Team: "Real Madrid", Nationality: "USA"},
		},
		schedErr: errors.New("rate limited"),
	}
	p, store := newTestPipeline(t, fetcher, &fakeResolver{})

	if err := p.Fetch(context.Background()); err != nil {
		t.Fatalf("schedule failure should not abort fetch: %v", err)
	}

	var games []roster.Game
	if err := store.LoadLatest(storage.StageSchedule, &games); err != nil {
		t.Fatalf("schedule stage should still be written: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected empty schedule stage, got %+v", games)
	}
}

func TestJoinFatalWithoutPlayersStage(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeFetcher{}, &fakeResolver{})

	_, err := p.Join(context.Background())
	if !errors.Is(err, storage.ErrNoStage) {
		t.Errorf("expected ErrNoStage for a never-fetched pipeline, got %v", err)
	}
}

func TestJoinEmptyPlayersStageYieldsEmptyOutput(t *testing.T) {
	p, store := newTestPipeline(t, &fakeFetcher{}, &fakeResolver{})

	// An existing-but-empty stage means "no players exist", not "load failed".
	if err := store.SaveStage(storage.StagePlayers, []roster.PlayerRecord{}); err != nil {
		t.Fatalf("seeding empty players stage: %v", err)
	}

	report, err := p.Join(context.Background())
	if err != nil {
		t.Fatalf("empty players stage should join to empty output: %v", err)
	}
	if report.Players != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}

	var unified []roster.UnifiedRecord
	if err := store.LoadLatest(storage.StageUnified, &unified); err != nil {
		t.Fatalf("loading unified stage: %v", err)
	}
	if len(unified) != 0 {
		t.Errorf("expected empty unified stage, got %+v", unified)
	}
}

func TestJoinToleratesMissingSupplementsStage(t *testing.T) {
	p, store := newTestPipeline(t, &fakeFetcher{}, &fakeResolver{})

	players := []roster.PlayerRecord{{Code: "1", Name: "Jane Roe", Team: "B"}}
	if err := store.SaveStage(storage.StagePlayers, players); err != nil {
		t.Fatalf("seeding players stage: %v", err)
	}

	report, err := p.Join(context.Background())
	if err != nil {
		t.Fatalf("missing supplements stage should not be fatal: %v", err)
	}
	if report.Players != 1 || report.Unmatched != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestResolveFatalWithoutPlayersStage(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeFetcher{}, &fakeResolver{})

	err := p.Resolve(context.Background())
	if !errors.Is(err, storage.ErrNoStage) {
		t.Errorf("expected ErrNoStage, got %v", err)
	}
}

package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmarrero/acbtrack/internal/roster"
	"github.com/dmarrero/acbtrack/internal/storage"
)

type playersResponse struct {
	Count   int                    `json:"count"`
	Players []roster.UnifiedRecord `json:"players"`
}

func newTestServer(t *testing.T, players []roster.UnifiedRecord) *httptest.Server {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	if players != nil {
		if err := store.SaveStage(storage.StageUnified, players); err != nil {
			t.Fatalf("seeding unified stage: %v", err)
		}
	}
	server := httptest.NewServer(NewServer(store, zerolog.Nop()).Router())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response from %s: %v", url, err)
	}
	return resp.StatusCode
}

func samplePlayers() []roster.UnifiedRecord {
	return []roster.UnifiedRecord{
		{
			PlayerRecord:    roster.PlayerRecord{Code: "1", Name: "John Doe", Team: "Real Madrid"},
			HometownState:   "IL",
			Hometown:        "Springfield, IL",
			MatchConfidence: roster.MatchExact,
		},
		{
			PlayerRecord:    roster.PlayerRecord{Code: "2", Name: "Jane Roe", Team: "Unicaja"},
			MatchConfidence: roster.MatchUnmatched,
		},
		{
			PlayerRecord:    roster.PlayerRecord{Code: "3", Name: "Alan Smith", Team: "Unicaja"},
			HometownState:   "TX",
			Hometown:        "Austin, TX",
			MatchConfidence: roster.MatchExact,
		},
	}
}

func TestListPlayers(t *testing.T) {
	server := newTestServer(t, samplePlayers())

	var got playersResponse
	if status := getJSON(t, server.URL+"/api/players", &got); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}

	if got.Count != 3 {
		t.Fatalf("expected 3 players, got %d", got.Count)
	}
	// Default sort is by name.
	if got.Players[0].Name != "Alan Smith" || got.Players[2].Name != "John Doe" {
		t.Errorf("players not sorted by name: %+v", got.Players)
	}
	// Unmatched players surface with their supplemental fields absent.
	for _, p := range got.Players {
		if p.Code == "2" && (p.Hometown != "" || p.MatchConfidence != roster.MatchUnmatched) {
			t.Errorf("unmatched player rendered incorrectly: %+v", p)
		}
	}
}

func TestListPlayersFilters(t *testing.T) {
	server := newTestServer(t, samplePlayers())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"search", "?search=doe", []string{"John Doe"}},
		{"search is case-insensitive", "?search=JANE", []string{"Jane Roe"}},
		{"team", "?team=Unicaja", []string{"Alan Smith", "Jane Roe"}},
		{"state", "?state=TX", []string{"Alan Smith"}},
		{"combined", "?team=Unicaja&state=TX", []string{"Alan Smith"}},
		{"sort by team", "?sort=team", []string{"John Doe", "Alan Smith", "Jane Roe"}},
		{"no match", "?search=nobody", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got playersResponse
			if status := getJSON(t, server.URL+"/api/players"+tt.query, &got); status != http.StatusOK {
				t.Fatalf("unexpected status: %d", status)
			}
			names := make([]string, 0, len(got.Players))
			for _, p := range got.Players {
				names = append(names, p.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, names)
			}
			for i := range tt.want {
				if names[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, names)
				}
			}
		})
	}
}

func TestGetPlayer(t *testing.T) {
	server := newTestServer(t, samplePlayers())

	var got roster.UnifiedRecord
	if status := getJSON(t, server.URL+"/api/players/1", &got); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if got.Name != "John Doe" || got.Hometown != "Springfield, IL" {
		t.Errorf("unexpected player: %+v", got)
	}

	var errBody map[string]string
	if status := getJSON(t, server.URL+"/api/players/999", &errBody); status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", status)
	}
}

func TestFilters(t *testing.T) {
	server := newTestServer(t, samplePlayers())

	var got map[string][]string
	if status := getJSON(t, server.URL+"/api/filters", &got); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}

	wantTeams := []string{"Real Madrid", "Unicaja"}
	if len(got["teams"]) != 2 || got["teams"][0] != wantTeams[0] || got["teams"][1] != wantTeams[1] {
		t.Errorf("expected teams %v, got %v", wantTeams, got["teams"])
	}
	wantStates := []string{"IL", "TX"}
	if len(got["states"]) != 2 || got["states"][0] != wantStates[0] || got["states"][1] != wantStates[1] {
		t.Errorf("expected states %v, got %v", wantStates, got["states"])
	}
}

func TestServiceUnavailableBeforeFirstRun(t *testing.T) {
	server := newTestServer(t, nil)

	var errBody map[string]string
	if status := getJSON(t, server.URL+"/api/players", &errBody); status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before the pipeline has run, got %d", status)
	}
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, nil)

	var got map[string]string
	if status := getJSON(t, server.URL+"/healthz", &got); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if got["status"] != "ok" {
		t.Errorf("unexpected health body: %v", got)
	}
}

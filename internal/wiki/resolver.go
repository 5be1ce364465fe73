package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/dmarrero/acbtrack/internal/config"
	"github.com/dmarrero/acbtrack/internal/roster"
)

// UserAgent identifies the resolver per Wikipedia's bot policy.
const UserAgent = "acbtrack/1.0 (github.com/dmarrero/acbtrack; roster enrichment)"

// Resolver looks up biographical attributes for players on Wikipedia.
type Resolver struct {
	httpClient *http.Client
	baseURL    string
	delay      time.Duration
	maxElapsed time.Duration
	logger     zerolog.Logger
}

// NewResolver creates a Resolver from the run configuration.
func NewResolver(cfg config.Config, logger zerolog.Logger) *Resolver {
	return &Resolver{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    strings.TrimRight(cfg.WikiBaseURL, "/"),
		delay:      cfg.RequestDelay,
		maxElapsed: cfg.MaxElapsedTime,
		logger:     logger.With().Str("component", "wiki").Logger(),
	}
}

// ResolveAll resolves every player sequentially with a polite delay between
// lookups. Misses and per-player failures are logged and skipped; only a
// cancelled context aborts the batch.
func (r *Resolver) ResolveAll(ctx context.Context, players []roster.PlayerRecord) ([]roster.SupplementalRecord, error) {
	supplements := make([]roster.SupplementalRecord, 0, len(players))
	for _, player := range players {
		sup, err := r.Resolve(ctx, player.Name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Warn().Err(err).Str("player", player.Name).Msg("lookup failed, skipping")
		} else if sup == nil {
			r.logger.Debug().Str("player", player.Name).Msg("no article found")
		} else {
			supplements = append(supplements, *sup)
		}

		if err := r.pause(ctx); err != nil {
			return nil, err
		}
	}
	r.logger.Info().Int("players", len(players)).Int("found", len(supplements)).Msg("resolved supplements")
	return supplements, nil
}

// Resolve looks up one player. It returns (nil, nil) when no article can be
// matched confidently: a miss is expected data absence, not an error.
func (r *Resolver) Resolve(ctx context.Context, name string) (*roster.SupplementalRecord, error) {
	pageURL, err := r.search(ctx, name)
	if err != nil {
		return nil, err
	}
	if pageURL == "" {
		return nil, nil
	}

	doc, err := r.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	// Guard against same-named non-players: the article has to be about
	// basketball or the lookup is treated as a miss.
	if !strings.Contains(strings.ToLower(doc.Find("body").Text()), "basketball") {
		r.logger.Debug().Str("player", name).Str("url", pageURL).Msg("article is not about basketball, treating as miss")
		return nil, nil
	}

	bio := extractBio(doc)
	if bio.Empty() {
		return nil, nil
	}

	return &roster.SupplementalRecord{
		Name:          name,
		SourceURL:     pageURL,
		HometownCity:  bio.HometownCity,
		HometownState: bio.HometownState,
		HighSchool:    bio.HighSchool,
		College:       bio.College,
		Partial:       !bio.Complete(),
	}, nil
}

// search runs an opensearch query and returns the URL of the first result
// whose title matches the player's normalized name, or "" when none does.
func (r *Resolver) search(ctx context.Context, name string) (string, error) {
	params := url.Values{
		"action": {"opensearch"},
		"search": {name},
		"limit":  {"5"},
		"format": {"json"},
	}

	body, err := r.get(ctx, r.baseURL+"/w/api.php?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("searching %q: %w", name, err)
	}

	// opensearch answers a 4-element array: query, titles, descriptions, urls.
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("parsing search response: %w", err)
	}
	if len(envelope) < 4 {
		return "", nil
	}
	var titles, urls []string
	if err := json.Unmarshal(envelope[1], &titles); err != nil {
		return "", fmt.Errorf("parsing search titles: %w", err)
	}
	if err := json.Unmarshal(envelope[3], &urls); err != nil {
		return "", fmt.Errorf("parsing search urls: %w", err)
	}

	key := roster.NormalizeName(name)
	for i, title := range titles {
		if i >= len(urls) {
			break
		}
		// "John Doe (basketball)" still normalizes to a prefix match.
		if strings.HasPrefix(roster.NormalizeName(title), key) {
			return urls[i], nil
		}
	}
	return "", nil
}

func (r *Resolver) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := r.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing article HTML: %w", err)
	}
	return doc, nil
}

// get performs one GET with the same backoff policy as the fetcher.
func (r *Resolver) get(ctx context.Context, u string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", u, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = r.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func (r *Resolver) pause(ctx context.Context) error {
	if r.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.delay):
		return nil
	}
}

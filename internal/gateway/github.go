// Package gateway provides a gateway to the public GitHub website,
// abstracting away the HTTP transport and response caching.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrUserNotFound is returned when GitHub reports the user does not exist.
	ErrUserNotFound = errors.New("github user not found")
	// ErrUpstream is returned when GitHub is reachable but responds with
	// any other non-success status.
	ErrUpstream = errors.New("failed to fetch github data")
)

// Fetcher defines the behavior of a gateway for fetching raw pages from GitHub.
type Fetcher interface {
	// FetchContributions returns the contribution calendar markup for a user
	// over the inclusive date range [from, to].
	FetchContributions(ctx context.Context, username string, from, to time.Time) (string, error)
	// FetchProfile returns the markup of the user's profile page.
	FetchProfile(ctx context.Context, username string) (string, error)
	// FetchRepositories returns the markup of the user's repository listing.
	FetchRepositories(ctx context.Context, username string) (string, error)
}

// cacheKey identifies one memoized contributions fetch.
type cacheKey struct {
	username string
	from     string
	to       string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
// Contribution fetches are memoized in a bounded LRU cache so that repeated
// requests for the same user and range do not hit GitHub again.
type GitHubGateway struct {
	baseURL    string
	httpClient *http.Client
	cache      *lru.Cache[cacheKey, string]
	dumpDir    string
	logger     zerolog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// cacheSize bounds the number of memoized contribution responses. dumpDir, when
// non-empty, is where the last raw contributions response is written as a debug
// artifact.
func NewGitHubGateway(baseURL string, timeout time.Duration, cacheSize int, dumpDir string, logger zerolog.Logger) (*GitHubGateway, error) {
	cache, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}
	return &GitHubGateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		dumpDir:    dumpDir,
		logger:     logger,
	}, nil
}

func (g *GitHubGateway) FetchContributions(ctx context.Context, username string, from, to time.Time) (string, error) {
	key := cacheKey{
		username: username,
		from:     from.Format("2006-01-02"),
		to:       to.Format("2006-01-02"),
	}
	if body, ok := g.cache.Get(key); ok {
		g.logger.Debug().Str("username", username).Msg("contribution cache hit")
		return body, nil
	}

	pageURL := fmt.Sprintf("%s/users/%s/contributions?from=%s&to=%s",
		g.baseURL, url.PathEscape(username), key.from, key.to)
	body, err := g.get(ctx, pageURL)
	if err != nil {
		return "", err
	}

	g.cache.Add(key, body)
	g.dumpResponse(body)
	return body, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (string, error) {
	return g.get(ctx, fmt.Sprintf("%s/%s", g.baseURL, url.PathEscape(username)))
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) (string, error) {
	return g.get(ctx, fmt.Sprintf("%s/%s?tab=repositories", g.baseURL, url.PathEscape(username)))
}

// get performs one GET against GitHub and maps the status code onto the
// gateway error taxonomy.
func (g *GitHubGateway) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}

	g.logger.Debug().Str("url", pageURL).Msg("fetching page from GitHub")
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: unexpected status %s", ErrUpstream, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %v", ErrUpstream, err)
	}
	return string(body), nil
}

// dumpResponse writes the raw markup to the configured dump directory.
// A failed write only logs a warning; the fetch itself already succeeded.
func (g *GitHubGateway) dumpResponse(body string) {
	if g.dumpDir == "" {
		return
	}
	path := filepath.Join(g.dumpDir, "response.html")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		g.logger.Warn().Err(err).Str("path", path).Msg("failed to write response dump")
	}
}

// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gh-contrib-api/internal/domain"
	"gh-contrib-api/internal/gateway"
	"gh-contrib-api/internal/scraper"
)

// Input validation errors. Their text is the message returned to API clients.
var (
	ErrUsernameRequired = errors.New("Username is required")
	ErrPeriodRequired   = errors.New("Either year or both from_date and to_date are required")
	ErrInvalidDate      = errors.New("Invalid date format. Use YYYY-MM-DD")
)

// IsInvalidInput reports whether err is a request validation error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrUsernameRequired) ||
		errors.Is(err, ErrPeriodRequired) ||
		errors.Is(err, ErrInvalidDate)
}

// Service is the use case for building contribution reports and profile data.
// It orchestrates fetching, parsing and statistics for one request at a time.
type Service struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a new Service instance. now is the clock used to drop
// future-dated calendar cells; pass time.Now outside of tests.
func NewService(fetcher gateway.Fetcher, logger zerolog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		now:     now,
	}
}

// GetContributions builds the full contribution report for a user. The period
// is either a year (expanded to Jan 1 - Dec 31) or an explicit from/to pair;
// supplying neither is a validation error.
func (s *Service) GetContributions(ctx context.Context, username, year, from, to string) (*domain.ContributionReport, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	if year != "" {
		from = fmt.Sprintf("%s-01-01", year)
		to = fmt.Sprintf("%s-12-31", year)
	} else if from == "" || to == "" {
		return nil, ErrPeriodRequired
	}

	fromDate, err := time.Parse(domain.DateLayout, from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse(domain.DateLayout, to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	markup, err := s.fetcher.FetchContributions(ctx, username, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	contributions, err := scraper.ParseCalendar(markup, s.now())
	if err != nil {
		return nil, err
	}

	// The upstream was already asked for this range, but re-filter anyway so
	// the report never carries days outside the requested period.
	contributions = filterPeriod(contributions, from, to)

	statistics, err := Summarize(contributions)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("username", username).
		Int("days", len(contributions)).
		Msg("contribution report built")

	return &domain.ContributionReport{
		Username:      username,
		Period:        domain.Period{From: from, To: to},
		Contributions: contributions,
		Statistics:    statistics,
	}, nil
}

// GetProfile fetches and scrapes the headline stats from a user's profile page.
func (s *Service) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	markup, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	stats, err := scraper.ParseProfile(markup)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{Username: username, Stats: stats}, nil
}

// GetRepositories fetches and scrapes a user's public repository listing.
func (s *Service) GetRepositories(ctx context.Context, username string) (*domain.RepositoryList, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	markup, err := s.fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}
	repos, err := scraper.ParseRepositories(markup)
	if err != nil {
		return nil, err
	}
	return &domain.RepositoryList{Username: username, Repositories: repos}, nil
}

// filterPeriod keeps only records inside the closed interval [from, to].
// Dates are ISO formatted so plain string comparison orders them correctly.
func filterPeriod(contributions []domain.Contribution, from, to string) []domain.Contribution {
	filtered := make([]domain.Contribution, 0, len(contributions))
	for _, c := range contributions {
		if c.Date >= from && c.Date <= to {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

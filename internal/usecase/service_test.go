package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gh-contrib-api/internal/domain"
	"gh-contrib-api/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It lets us exercise the orchestration without any real network traffic.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchContributions(ctx context.Context, username string, from, to time.Time) (string, error) {
	args := m.Called(ctx, username, from, to)
	return args.String(0), args.Error(1)
}

func (m *mockFetcher) FetchProfile(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

// testNow is well past every date used in the calendar fixtures.
func testNow() time.Time {
	return time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
}

// calendarFixture is a minimal contributions page with three days in 2023.
const calendarFixture = `<html><body><table><tbody><tr>` +
	`<td class="ContributionCalendar-day" id="d1" data-date="2023-01-01" data-level="2"></td>` +
	`<td class="ContributionCalendar-day" id="d2" data-date="2023-01-02" data-level="0"></td>` +
	`<td class="ContributionCalendar-day" id="d3" data-date="2023-01-03" data-level="1"></td>` +
	`</tr></tbody></table>` +
	`<tool-tip for="d1">5 contributions on January 1st.</tool-tip>` +
	`<tool-tip for="d2">No contributions on January 2nd.</tool-tip>` +
	`<tool-tip for="d3">2 contributions on January 3rd.</tool-tip>` +
	`</body></html>`

func TestService_GetContributions(t *testing.T) {
	date := func(s string) time.Time {
		d, err := time.Parse(domain.DateLayout, s)
		require.NoError(t, err)
		return d
	}

	t.Run("year is expanded to a full calendar year", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchContributions", mock.Anything, "octocat", date("2023-01-01"), date("2023-12-31")).
			Return(calendarFixture, nil)
		service := NewService(fetcher, zerolog.Nop(), testNow)

		report, err := service.GetContributions(context.Background(), "octocat", "2023", "", "")

		require.NoError(t, err)
		assert.Equal(t, "octocat", report.Username)
		assert.Equal(t, domain.Period{From: "2023-01-01", To: "2023-12-31"}, report.Period)
		require.Len(t, report.Contributions, 3)
		require.NotNil(t, report.Statistics)
		assert.Equal(t, 7, report.Statistics.Total)
		assert.Equal(t, 2, report.Statistics.ActiveDays)
		assert.Equal(t, 1, report.Statistics.Inactive)
		fetcher.AssertExpectations(t)
	})

	t.Run("records outside the requested range are filtered out", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchContributions", mock.Anything, "octocat", date("2023-01-02"), date("2023-01-03")).
			Return(calendarFixture, nil)
		service := NewService(fetcher, zerolog.Nop(), testNow)

		report, err := service.GetContributions(context.Background(), "octocat", "", "2023-01-02", "2023-01-03")

		require.NoError(t, err)
		require.Len(t, report.Contributions, 2)
		assert.Equal(t, "2023-01-02", report.Contributions[0].Date)
		assert.Equal(t, "2023-01-03", report.Contributions[1].Date)
		require.NotNil(t, report.Statistics)
		assert.Equal(t, 2, report.Statistics.Total)
	})

	t.Run("range with no records yields empty contributions and nil statistics", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchContributions", mock.Anything, "octocat", date("2023-06-01"), date("2023-06-30")).
			Return(calendarFixture, nil)
		service := NewService(fetcher, zerolog.Nop(), testNow)

		report, err := service.GetContributions(context.Background(), "octocat", "", "2023-06-01", "2023-06-30")

		require.NoError(t, err)
		assert.Empty(t, report.Contributions)
		assert.Nil(t, report.Statistics)
	})

	t.Run("validation errors", func(t *testing.T) {
		testCases := []struct {
			name     string
			username string
			year     string
			from     string
			to       string
			expected error
		}{
			{name: "missing username", expected: ErrUsernameRequired},
			{name: "missing period", username: "octocat", expected: ErrPeriodRequired},
			{name: "from without to", username: "octocat", from: "2023-01-01", expected: ErrPeriodRequired},
			{name: "malformed from date", username: "octocat", from: "01/01/2023", to: "2023-12-31", expected: ErrInvalidDate},
			{name: "malformed to date", username: "octocat", from: "2023-01-01", to: "31-12-2023", expected: ErrInvalidDate},
			{name: "non-numeric year", username: "octocat", year: "twenty", expected: ErrInvalidDate},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				service := NewService(new(mockFetcher), zerolog.Nop(), testNow)

				_, err := service.GetContributions(context.Background(), tc.username, tc.year, tc.from, tc.to)

				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expected)
				assert.True(t, IsInvalidInput(err))
			})
		}
	})

	t.Run("fetcher errors pass through untouched", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchContributions", mock.Anything, "ghost", mock.Anything, mock.Anything).
			Return("", gateway.ErrUserNotFound)
		service := NewService(fetcher, zerolog.Nop(), testNow)

		_, err := service.GetContributions(context.Background(), "ghost", "2023", "", "")

		assert.ErrorIs(t, err, gateway.ErrUserNotFound)
	})
}

func TestService_GetProfile(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchProfile", mock.Anything, "octocat").Return(
		`<html><body><div class="js-yearly-contributions"><h2>99 contributions in the last year</h2></div></body></html>`, nil)
	service := NewService(fetcher, zerolog.Nop(), testNow)

	profile, err := service.GetProfile(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Username)
	require.NotNil(t, profile.Stats.TotalContributionsLastYear)
	assert.Equal(t, 99, *profile.Stats.TotalContributionsLastYear)
	fetcher.AssertExpectations(t)
}

func TestService_GetRepositories(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(
		`<html><body><ul><li class="col-12 d-flex width-full py-4 border-bottom color-border-muted public source">`+
			`<a itemprop="name codeRepository">hello-world</a>`+
			`<span itemprop="programmingLanguage">Go</span>`+
			`</li></ul></body></html>`, nil)
	service := NewService(fetcher, zerolog.Nop(), testNow)

	repos, err := service.GetRepositories(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "octocat", repos.Username)
	assert.Equal(t, []domain.Repository{{Name: "hello-world", Language: "Go"}}, repos.Repositories)
	fetcher.AssertExpectations(t)
}

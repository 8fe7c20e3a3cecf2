// Package domain contains the core data structures and domain logic for the application.
package domain

import "fmt"

// DateLayout is the calendar date format used throughout the API,
// both for request parameters and for the dates on contribution records.
const DateLayout = "2006-01-02"

// contributionColors maps an intensity level (0-4) to the display color
// GitHub uses for that bucket on the contribution calendar.
var contributionColors = [5]string{
	"#ebedf0",
	"#9be9a8",
	"#40c463",
	"#30a14e",
	"#216e39",
}

// ColorForLevel returns the display color for an intensity level.
// Levels outside 0-4 have no defined color and are rejected.
func ColorForLevel(level int) (string, error) {
	if level < 0 || level >= len(contributionColors) {
		return "", fmt.Errorf("contribution level %d is out of range [0,4]", level)
	}
	return contributionColors[level], nil
}

// Contribution holds the activity recorded for a single calendar day.
// It is the core domain entity of this application.
type Contribution struct {
	Date        string `json:"date"`
	Count       int    `json:"contributions"`
	Level       int    `json:"level"`
	ColorCode   string `json:"colorCode"`
	Description string `json:"description"`
}

// Period is the inclusive date range a contribution report covers.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Streak describes the longest run of consecutive records with a positive
// count. Consecutive means adjacent entries in the date-sorted sequence,
// not necessarily adjacent calendar days.
type Streak struct {
	Length  int    `json:"length"`
	EndDate string `json:"end_date"`
}

// Statistics holds the aggregates derived from a contribution sequence.
type Statistics struct {
	Total      int           `json:"total_contributions"`
	Mean       float64       `json:"average_daily_contributions"`
	Median     float64       `json:"median_daily_contributions"`
	MaxDay     *Contribution `json:"max_contributions_day"`
	Streak     Streak        `json:"streak"`
	ActiveDays int           `json:"active_days"`
	Inactive   int           `json:"inactive_days"`
}

// ContributionReport is the full payload returned for a contributions query.
type ContributionReport struct {
	Username      string         `json:"username"`
	Period        Period         `json:"period"`
	Contributions []Contribution `json:"contributions"`
	Statistics    *Statistics    `json:"statistics"`
}

// ProfileStats holds the best-effort numbers scraped from a profile page.
// Fields the page did not expose are left nil and omitted from the JSON.
type ProfileStats struct {
	TotalContributionsLastYear *int `json:"total_contributions_last_year,omitempty"`
	Repositories               *int `json:"repositories,omitempty"`
	Followers                  *int `json:"followers,omitempty"`
	Following                  *int `json:"following,omitempty"`
}

// Profile pairs a username with its scraped stats.
type Profile struct {
	Username string       `json:"username"`
	Stats    ProfileStats `json:"stats"`
}

// Repository is one entry from a user's public repository listing.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// RepositoryList pairs a username with their scraped repositories.
type RepositoryList struct {
	Username     string       `json:"username"`
	Repositories []Repository `json:"repositories"`
}

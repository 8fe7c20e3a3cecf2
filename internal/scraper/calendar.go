// Package scraper extracts structured data from GitHub's HTML pages.
// All selectors here are coupled to the markup GitHub serves today and
// will need updating whenever that markup changes.
package scraper

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gh-contrib-api/internal/domain"
)

// countPattern extracts the numeric count from tooltip text such as
// "5 contributions on January 1st." Text without a number (for example
// "No contributions") is a valid zero-count day.
var countPattern = regexp.MustCompile(`(\d+) contributions?`)

// ParseCalendar extracts per-day contribution records from the contribution
// calendar markup. Cells without a date or without an associated tooltip are
// skipped, as are cells dated after now (GitHub renders the remainder of the
// week as empty placeholders). The result is sorted ascending by date.
func ParseCalendar(markup string, now time.Time) ([]domain.Contribution, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar markup: %w", err)
	}

	today := now.Format(domain.DateLayout)
	contributions := []domain.Contribution{}
	var parseErr error

	doc.Find("td.ContributionCalendar-day").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		date, ok := cell.Attr("data-date")
		if !ok || date == "" {
			return true
		}
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			parseErr = fmt.Errorf("calendar cell has malformed date %q: %w", date, err)
			return false
		}
		// Dates are ISO formatted, so string comparison is date comparison.
		if date > today {
			return true
		}

		cellID, _ := cell.Attr("id")
		tooltip := doc.Find(fmt.Sprintf(`tool-tip[for=%q]`, cellID))
		if tooltip.Length() == 0 {
			// No tooltip means no data for the cell, not a zero count.
			return true
		}
		description := strings.TrimSpace(tooltip.Text())

		count := 0
		if m := countPattern.FindStringSubmatch(description); m != nil {
			count, _ = strconv.Atoi(m[1])
		}

		level := 0
		if raw, ok := cell.Attr("data-level"); ok && raw != "" {
			parsed, convErr := strconv.Atoi(raw)
			if convErr != nil {
				parseErr = fmt.Errorf("calendar cell %s has malformed level %q: %w", date, raw, convErr)
				return false
			}
			level = parsed
		}
		color, err := domain.ColorForLevel(level)
		if err != nil {
			parseErr = fmt.Errorf("calendar cell %s: %w", date, err)
			return false
		}

		contributions = append(contributions, domain.Contribution{
			Date:        date,
			Count:       count,
			Level:       level,
			ColorCode:   color,
			Description: description,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].Date < contributions[j].Date
	})
	return contributions, nil
}

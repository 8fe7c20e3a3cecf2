package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gh-contrib-api/internal/domain"
)

var firstNumber = regexp.MustCompile(`(\d+)`)

// ParseProfile pulls the headline numbers off a profile page. Every field is
// best-effort: pieces the page does not expose are simply left unset rather
// than failing the whole request.
func ParseProfile(markup string) (domain.ProfileStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return domain.ProfileStats{}, err
	}

	stats := domain.ProfileStats{}

	// Yearly contribution total, e.g. "1,234 contributions in the last year".
	doc.Find("div.js-yearly-contributions h2").Each(func(_ int, h2 *goquery.Selection) {
		text := h2.Text()
		if !strings.Contains(strings.ToLower(text), "contributions") {
			return
		}
		if n, ok := extractNumber(text); ok {
			stats.TotalContributionsLastYear = &n
		}
	})

	// The first nav counter on the page is the repository count.
	if counter := doc.Find("span.Counter").First(); counter.Length() > 0 {
		if n, ok := extractNumber(counter.Text()); ok {
			stats.Repositories = &n
		}
	}

	// Follower and following counts share one span style in the sidebar.
	doc.Find("span.text-bold.color-fg-default").Each(func(_ int, span *goquery.Selection) {
		text := strings.ToLower(span.Text())
		n, ok := extractNumber(text)
		if !ok {
			return
		}
		switch {
		case strings.Contains(text, "followers"):
			stats.Followers = &n
		case strings.Contains(text, "following"):
			stats.Following = &n
		}
	})

	return stats, nil
}

// extractNumber returns the first integer embedded in text. Thousands
// separators are stripped first so "1,234" reads as 1234.
func extractNumber(text string) (int, bool) {
	m := firstNumber.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

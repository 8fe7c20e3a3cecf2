package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gh-contrib-api/internal/domain"
)

// repoItemSelector matches the list items on the public "Repositories" tab.
const repoItemSelector = "li.col-12.d-flex.width-full.py-4.border-bottom.color-border-muted.public.source"

// ParseRepositories extracts the public source repositories from a user's
// repository listing page. Entries without a name link are skipped;
// description and language default to empty strings.
func ParseRepositories(markup string) ([]domain.Repository, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	repos := []domain.Repository{}
	doc.Find(repoItemSelector).Each(func(_ int, item *goquery.Selection) {
		name := strings.TrimSpace(item.Find(`a[itemprop="name codeRepository"]`).Text())
		if name == "" {
			return
		}
		repos = append(repos, domain.Repository{
			Name:        name,
			Description: strings.TrimSpace(item.Find("p.col-9.d-inline-block.text-gray.mb-2.pr-4").Text()),
			Language:    strings.TrimSpace(item.Find(`span[itemprop="programmingLanguage"]`).Text()),
		})
	})
	return repos, nil
}

package books

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"books-scraper/models"
)

// extractBooks parses one catalog page into raw records, one per
// article.product_pod container. A container missing its title or link is
// skipped; the rest of the page is still extracted. Zero containers means
// the page holds no data, which is distinct from a fetch failure.
func (s *Scraper) extractBooks(body string, pageNum int) ([]*models.RawBook, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var raw []*models.RawBook

	doc.Find("article.product_pod").Each(func(i int, pod *goquery.Selection) {
		link := pod.Find("h3 a")
		title, hasTitle := link.Attr("title")
		href, hasHref := link.Attr("href")
		if !hasTitle || !hasHref || strings.TrimSpace(title) == "" {
			s.logger.Warn("[books] Page %d: skipping malformed entry #%d (missing title or link)", pageNum, i+1)
			return
		}

		// The rating is encoded as the second class on the star element,
		// e.g. class="star-rating Three".
		var rating string
		if cls, ok := pod.Find("p.star-rating").Attr("class"); ok {
			fields := strings.Fields(cls)
			if len(fields) > 1 {
				rating = fields[1]
			}
		}

		raw = append(raw, &models.RawBook{
			Title:        title,
			PriceText:    pod.Find("p.price_color").Text(),
			Availability: strings.TrimSpace(pod.Find("p.availability").Text()),
			RatingText:   rating,
			URL:          s.detailURL(href),
			Page:         pageNum,
		})
	})

	return raw, nil
}

// detailURL turns an item link target into an absolute detail-page URL.
// Relative targets get the catalogue path segment prefixed when absent,
// then resolve against the base URL.
func (s *Scraper) detailURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.Contains(href, "catalogue/") {
		href = "catalogue/" + href
	}
	return s.baseURL + href
}

// Package crawl discovers the page range of a paginated listing and
// provides the starting page the export reads in place.
package crawl

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var paginatorLinks = cascadia.MustCompile(".paginator-style-2__list li a[data-page]")

// LastPage returns the highest data-page marker in the paginator, or 1
// when the listing has no paginator (a single page).
func LastPage(doc *goquery.Document) int {
	last := 1
	doc.FindMatcher(paginatorLinks).Each(func(_ int, s *goquery.Selection) {
		p, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("data-page", "")))
		if err != nil {
			return
		}
		if p > last {
			last = p
		}
	})
	return last
}

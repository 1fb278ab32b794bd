// Listing URL rules.
// Derives the listing base and the current page number from the start URL.

package crawl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseListingURL validates a listing URL; it must be absolute.
func ParseListingURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://puzzle-english.com/dictionary)", rawURL)
	}
	return parsed, nil
}

// ListingBase strips query and fragment, leaving the address that page
// numbers are appended to.
func ListingBase(u *url.URL) string {
	base := *u
	base.RawQuery = ""
	base.Fragment = ""
	base.RawFragment = ""
	return base.String()
}

// CurrentPage reads the page query parameter. Missing or non-positive
// values mean page 1.
func CurrentPage(u *url.URL) int {
	raw := u.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

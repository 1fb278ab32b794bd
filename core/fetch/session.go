package fetch

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// NewSessionJar builds a cookie jar holding the cookies of an existing
// browser session, scoped to the listing host.
func NewSessionJar(baseURL, cookieHeader string) (*cookiejar.Jar, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid listing URL %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	cookieHeader = strings.TrimSpace(cookieHeader)
	if cookieHeader == "" {
		return jar, nil
	}
	cookies, err := http.ParseCookie(cookieHeader)
	if err != nil {
		return nil, fmt.Errorf("parsing session cookie: %w", err)
	}
	// Root path so every listing page receives the session.
	jar.SetCookies(&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}, cookies)
	return jar, nil
}

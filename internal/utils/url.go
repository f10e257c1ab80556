package utils

import (
	"fmt"
	"net/url"
	"strings"
)

func ParseSecureURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL rejected: %s", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL has no host: %s", raw)
	}
	return parsed, nil
}

// AppendPathSegment returns base with segment appended as one escaped path
// element, so "a/b" stays a single segment.
func AppendPathSegment(base *url.URL, segment string) string {
	u := *base
	u.RawQuery, u.Fragment = "", ""
	p := strings.TrimRight(u.EscapedPath(), "/")
	u.RawPath = p + "/" + url.PathEscape(segment)
	u.Path, _ = url.PathUnescape(u.RawPath)
	return u.String()
}

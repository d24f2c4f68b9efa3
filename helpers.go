package hdsite

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Slugify converts a title to a lowercase, hyphenated, URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// DeriveSlug builds a slug from a title plus a millisecond timestamp suffix
// so two posts created from the same title still get distinct slugs.
func DeriveSlug(title string, now time.Time) string {
	base := Slugify(title)
	if base == "" {
		base = "untitled"
	}
	return fmt.Sprintf("%s-%d", base, now.UnixMilli())
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

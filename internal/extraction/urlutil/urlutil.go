// Package urlutil normalizes URLs arriving from mobile share intents.
//
// Share sheets rarely hand over a bare URL: the link is usually embedded in
// text ("Check out this recipe! https://youtu.be/..."), decorated with
// tracking parameters, or in a mobile-specific format (m.youtube.com,
// youtu.be). Everything downstream assumes a clean canonical URL, so all
// inbound URLs pass through Preprocess first.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://[^\s<>"']+[^\s<>"'.,;:!?)\]]`)
	bareDomainPattern = regexp.MustCompile(`(?i)^[\w\-.]+\.[a-z]{2,}`)
)

// trackingParams are query parameters added by share sheets and social apps
// that carry no routing information.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"igsh":         {},
	"igshid":       {},
	"si":           {},
	"feature":      {},
	"fbclid":       {},
	"ref":          {},
	"ref_src":      {},
	"ref_url":      {},
	"source":       {},
	"mc_cid":       {},
	"mc_eid":       {},
}

// ExtractFromText pulls the first URL out of free-form share text. Returns
// an empty string when the text contains nothing URL-shaped. Text that looks
// like a bare domain ("example.com/recipe") is promoted to an https URL.
func ExtractFromText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if match := urlPattern.FindString(text); match != "" {
		return Clean(match)
	}

	if bareDomainPattern.MatchString(text) {
		return "https://" + text
	}

	return ""
}

// Clean strips whitespace, trailing punctuation, tracking query parameters
// and the fragment from a URL. Remaining query parameters keep their
// original order. Unparseable input is returned unchanged.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}

	raw = strings.TrimSpace(raw)
	raw = strings.TrimRight(raw, `.,;:!?)'"`)

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	var kept []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if value == "" {
			continue
		}
		if _, skip := trackingParams[strings.ToLower(key)]; skip {
			continue
		}
		kept = append(kept, pair)
	}

	u.RawQuery = strings.Join(kept, "&")
	u.Fragment = ""

	return u.String()
}

// NormalizeYouTube rewrites youtu.be short links to the canonical
// youtube.com/watch form and mobile hosts to www.youtube.com.
func NormalizeYouTube(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(u.Host)

	if strings.Contains(host, "youtu.be") {
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return "https://www.youtube.com/watch?v=" + id
		}
	}

	if host == "m.youtube.com" {
		return strings.Replace(raw, "m.youtube.com", "www.youtube.com", 1)
	}

	return raw
}

// NormalizeInstagram cleans tracking parameters and forces the www host so
// post, reel and reels URLs compare equal regardless of how they were shared.
func NormalizeInstagram(raw string) string {
	if raw == "" {
		return raw
	}

	raw = Clean(raw)

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if strings.ToLower(u.Host) == "instagram.com" {
		raw = strings.Replace(raw, "://instagram.com", "://www.instagram.com", 1)
	}

	return raw
}

// Preprocess is the single entry point for URLs coming from clients. It
// extracts a URL embedded in share text, removes tracking parameters and
// applies platform-specific normalization.
func Preprocess(raw string) string {
	if raw == "" {
		return raw
	}

	u := ExtractFromText(raw)
	if u == "" {
		u = strings.TrimSpace(raw)
	}

	u = Clean(u)

	lower := strings.ToLower(u)
	switch {
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		u = NormalizeYouTube(u)
	case strings.Contains(lower, "instagram.com"):
		u = NormalizeInstagram(u)
	}

	return u
}

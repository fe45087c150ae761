package sites

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// shortenerDomains are link shorteners that must be resolved before the
// recipe-site check can say anything useful about the target.
var shortenerDomains = map[string]struct{}{
	"bit.ly":      {},
	"tinyurl.com": {},
	"goo.gl":      {},
	"t.co":        {},
	"buff.ly":     {},
	"ow.ly":       {},
	"is.gd":       {},
	"rb.gy":       {},
	"cutt.ly":     {},
	"tiny.cc":     {},
	"shorturl.at": {},
	"rebrand.ly":  {},
}

// Resolver expands shortened links and filters the result down to likely
// recipe URLs.
type Resolver struct {
	client     *http.Client
	shorteners map[string]struct{}
}

func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{client: client, shorteners: shortenerDomains}
}

// ExpandAndFilter resolves any shortened links in urls, then keeps only
// likely recipe URLs, ranked like Filter and with duplicates removed. Links
// that fail to resolve are checked as-is rather than dropped.
func (r *Resolver) ExpandAndFilter(ctx context.Context, urls []string) []string {
	seen := make(map[string]struct{})
	var known, generic []string

	for _, raw := range urls {
		resolved := raw
		if r.isShortener(raw) {
			if expanded, err := r.resolve(ctx, raw); err == nil {
				resolved = expanded
			}
		}

		if _, dup := seen[resolved]; dup {
			continue
		}

		switch rank(resolved) {
		case rankKnown:
			seen[resolved] = struct{}{}
			known = append(known, resolved)
		case rankGeneric:
			seen[resolved] = struct{}{}
			generic = append(generic, resolved)
		}
	}

	return append(known, generic...)
}

func (r *Resolver) isShortener(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	_, ok := r.shorteners[host]
	return ok
}

// resolve follows redirects and returns the final URL. HEAD is tried first;
// some shorteners reject it, so GET is the fallback.
func (r *Resolver) resolve(ctx context.Context, rawURL string) (string, error) {
	final, err := r.request(ctx, http.MethodHead, rawURL)
	if err == nil {
		return final, nil
	}
	return r.request(ctx, http.MethodGet, rawURL)
}

func (r *Resolver) request(ctx context.Context, method, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%s %s: unexpected status %d", method, rawURL, resp.StatusCode)
	}

	return resp.Request.URL.String(), nil
}

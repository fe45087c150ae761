// Package search finds published versions of a recipe by querying recipe
// site search pages with the video's title and author. It backs the
// web-search stage of extraction, which runs when a video has no usable
// recipe link.
package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const resultsPerSite = 10

// Result is one candidate recipe page from a site search.
type Result struct {
	URL        string
	Title      string
	SiteName   string
	Similarity float64
}

// Searcher queries recipe sites concurrently.
type Searcher struct {
	client *http.Client
	sites  []Site
}

// NewSearcher builds a Searcher over the known recipe sites. A nil client
// gets a 10 second timeout.
func NewSearcher(client *http.Client) *Searcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Searcher{client: client, sites: Sites}
}

// Search queries every site with a query built from the title and author,
// scores each result against the original title and returns matches at or
// above minSimilarity, best first, deduplicated by URL and capped at
// maxResults. Individual site failures are logged and skipped.
func (s *Searcher) Search(ctx context.Context, title, author string, minSimilarity float64, maxResults int) ([]Result, error) {
	query := BuildQuery(title, author)
	if len(query) < 3 {
		return nil, nil
	}

	var (
		mu  sync.Mutex
		all []Result
		wg  sync.WaitGroup
	)

	for _, site := range s.sites {
		wg.Add(1)
		go func(site Site) {
			defer wg.Done()
			results, err := s.searchSite(ctx, site, query)
			if err != nil {
				log.Printf("[RecipeSearch] %s: %v", site.Name, err)
				return
			}
			mu.Lock()
			all = append(all, results...)
			mu.Unlock()
		}(site)
	}
	wg.Wait()

	for i := range all {
		all[i].Similarity = TitleSimilarity(title, all[i].Title)
	}

	filtered := all[:0]
	for _, r := range all {
		if r.Similarity >= minSimilarity {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Similarity > filtered[j].Similarity
	})

	seen := make(map[string]bool)
	unique := make([]Result, 0, len(filtered))
	for _, r := range filtered {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		unique = append(unique, r)
	}

	if maxResults > 0 && len(unique) > maxResults {
		unique = unique[:maxResults]
	}
	return unique, nil
}

func (s *Searcher) searchSite(ctx context.Context, site Site, query string) ([]Result, error) {
	searchURL := fmt.Sprintf(site.SearchURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; RecipeSaver/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []Result
	doc.Find(site.ResultSelector).EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= resultsPerSite {
			return false
		}

		link := el
		if goquery.NodeName(el) != "a" {
			link = el.Find("a").First()
			if link.Length() == 0 {
				return true
			}
		}

		href, _ := link.Attr("href")
		if href == "" {
			return true
		}
		if strings.HasPrefix(href, "/") {
			if site.BaseURL == "" {
				return true
			}
			href = site.BaseURL + href
		}

		title := strings.TrimSpace(el.Find(site.TitleSelector).First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if title == "" {
			return true
		}

		results = append(results, Result{
			URL:      href,
			Title:    title,
			SiteName: site.Name,
		})
		return true
	})

	return results, nil
}

// Package sites detects likely recipe-page URLs inside free text such as
// video descriptions, pinned comments and captions.
package sites

import (
	"net/url"
	"regexp"
	"strings"
)

// knownDomains lists recipe sites that reliably publish schema.org/Recipe
// markup. Matching is by substring on the host, so "nytimes.com" also covers
// "cooking.nytimes.com".
var knownDomains = []string{
	"cooking.nytimes.com",
	"nytimes.com",
	"seriouseats.com",
	"bonappetit.com",
	"epicurious.com",
	"food52.com",
	"allrecipes.com",
	"foodnetwork.com",
	"delish.com",
	"thekitchn.com",
	"simplyrecipes.com",
	"budgetbytes.com",
	"smittenkitchen.com",
	"minimalistbaker.com",
	"halfbakedharvest.com",
	"pinchofyum.com",
	"cookieandkate.com",
	"loveandlemons.com",
	"skinnytaste.com",
	"recipetineats.com",
	"sallysbakingaddiction.com",
	"hostthetoast.com",
	"justonecookbook.com",
	"davidlebovitz.com",
	"kingarthurbaking.com",
	"jocooks.com",
	"gimmesomeoven.com",
	"cafedelites.com",
	"damndelicious.net",
	"therecipecritic.com",
	"tasteofhome.com",
	"myrecipes.com",
	"eatingwell.com",
	"marthastewart.com",
	"tasty.co",
	"bbcgoodfood.com",
	"bbc.co.uk",
	"ricardocuisine.com",
	"marmiton.org",
	"chefkoch.de",
	"themediterraneandish.com",
	"feelgoodfoodie.net",
	"wellplated.com",
}

var recipePathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/recipe[s]?/`),
	regexp.MustCompile(`/recette[s]?/`),
	regexp.MustCompile(`/rezept[e]?/`),
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+[^\s<>"')\].,;:!?]`)

// patternLinkPatterns match the phrasing creators use to point at a written
// recipe ("Get the recipe here: ...", "Full recipe → ..."). URLs found this
// way are strong candidates even on unknown domains.
var patternLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:get\s+the\s+)?recipe\s+here\s*[:\-=>→]*\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)full\s+recipe\s*[:\-=>→]*\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)written\s+recipe\s*[:\-=>→]*\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)recipe\s+link\s*[:\-=>→]*\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)(?:get|find)\s+the\s+(?:full\s+)?recipe\s+(?:at|on|from)\s+(https?://\S+)`),
	regexp.MustCompile(`(?i)(?:get|find)\s+the\s+(?:full\s+)?recipe\s*[:\-=>→]+\s*(https?://\S+)`),
}

// linkInBioPatterns catch the "recipe in bio" phrasing common on Shorts and
// Reels. There is no link to follow, but the hint is worth surfacing to the
// user when extraction fails.
var linkInBioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)recipe\s+(?:is\s+)?in\s+(?:my\s+|the\s+)?bio`),
	regexp.MustCompile(`(?i)link\s+in\s+(?:my\s+|the\s+)?bio`),
	regexp.MustCompile(`(?i)check\s+(?:my\s+|the\s+)?bio`),
	regexp.MustCompile(`(?i)recipe\s+in\s+(?:my\s+)?profile`),
}

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// Ranking tiers for candidate URLs. Known recipe domains outrank generic
// /recipe/-path matches; anything else is not a candidate.
const (
	rankKnown = iota
	rankGeneric
	rankNone
)

func rank(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rankNone
	}

	domain := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	for _, known := range knownDomains {
		if strings.Contains(domain, known) {
			return rankKnown
		}
	}

	path := strings.ToLower(u.Path)
	for _, pattern := range recipePathPatterns {
		if pattern.MatchString(path) {
			return rankGeneric
		}
	}

	return rankNone
}

// IsRecipeURL reports whether a URL likely points at a recipe page, either
// because the domain is a known recipe site or because the path contains a
// recipe segment.
func IsRecipeURL(rawURL string) bool {
	return rank(rawURL) != rankNone
}

// Filter keeps only likely recipe URLs, known recipe domains before
// generic-path matches, first-occurrence order within each tier.
func Filter(urls []string) []string {
	var known, generic []string
	for _, u := range urls {
		switch rank(u) {
		case rankKnown:
			known = append(known, u)
		case rankGeneric:
			generic = append(generic, u)
		}
	}
	return append(known, generic...)
}

// ExtractURLs finds all URLs in text, in first-occurrence order with
// duplicates removed.
func ExtractURLs(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string

	for _, match := range urlPattern.FindAllString(text, -1) {
		u := strings.TrimRight(match, `.,;:!?)'"`)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return urls
}

// PatternLinks extracts URLs that follow an explicit recipe call-to-action
// phrase, in first-occurrence order with duplicates removed.
func PatternLinks(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string

	for _, pattern := range patternLinkPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			u := strings.TrimRight(match[1], `.,;:!?)'"`)
			if u == "" {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	return urls
}

// HasLinkInBio reports whether the text claims the recipe lives in the
// creator's bio or profile.
func HasLinkInBio(text string) bool {
	if text == "" {
		return false
	}
	for _, pattern := range linkInBioPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// Hashtags returns the hashtags in text with their leading '#', in
// first-occurrence order with duplicates removed.
func Hashtags(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string

	for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tag := "#" + match[1]
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	specialCharPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	creatorSuffixPatt  = regexp.MustCompile(`\s*\|\s*.*$`)
	hashtagPattern     = regexp.MustCompile(`#\w+`)
	shortsPattern      = regexp.MustCompile(`(?i)#?shorts?`)
	emojiPattern       = regexp.MustCompile(`[^\p{L}\p{N}_\s\-']`)
)

// stopWords are ignored when comparing recipe titles. Besides ordinary
// function words this includes filler that video titles add around the dish
// name ("easy", "best", "homemade").
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "shall": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "my": {}, "your": {},
	"his": {}, "her": {}, "its": {}, "our": {}, "their": {}, "recipe": {},
	"recipes": {}, "how": {}, "make": {}, "making": {}, "easy": {},
	"best": {}, "simple": {}, "homemade": {}, "quick": {},
}

// NormalizeTitle lowercases and strips punctuation for comparison.
func NormalizeTitle(text string) string {
	if text == "" {
		return ""
	}
	text = specialCharPattern.ReplaceAllString(strings.ToLower(text), " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// Keywords returns the meaningful words of a recipe title as a set.
func Keywords(title string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, word := range strings.Fields(NormalizeTitle(title)) {
		if _, stop := stopWords[word]; !stop {
			keywords[word] = struct{}{}
		}
	}
	return keywords
}

// TitleSimilarity scores two recipe titles with Jaccard similarity over
// their keyword sets. Returns 0.0 to 1.0.
func TitleSimilarity(title1, title2 string) float64 {
	keywords1 := Keywords(title1)
	keywords2 := Keywords(title2)

	if len(keywords1) == 0 || len(keywords2) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range keywords1 {
		if _, ok := keywords2[word]; ok {
			intersection++
		}
	}
	union := len(keywords1) + len(keywords2) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// BuildQuery turns a video title into a search query, clearing out the
// decoration video titles accumulate: "| Creator" suffixes, hashtags, the
// shorts marker and emoji. A usable author name is appended for more
// specific results.
func BuildQuery(title, author string) string {
	query := creatorSuffixPatt.ReplaceAllString(title, "")
	query = hashtagPattern.ReplaceAllString(query, "")
	query = shortsPattern.ReplaceAllString(query, "")
	query = emojiPattern.ReplaceAllString(query, " ")
	query = strings.TrimSpace(whitespacePattern.ReplaceAllString(query, " "))

	if author != "" {
		clean := strings.TrimSpace(specialCharPattern.ReplaceAllString(author, ""))
		if utf8.RuneCountInString(clean) > 2 {
			query = query + " " + clean
		}
	}

	return query
}

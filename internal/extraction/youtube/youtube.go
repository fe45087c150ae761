// Package youtube retrieves video metadata, captions and comments using the
// public oEmbed endpoint and the payloads embedded in watch pages. No API
// key or credentials are required.
package youtube

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidURL means the URL does not contain a recognizable video ID.
var ErrInvalidURL = errors.New("not a valid YouTube video URL")

// FetchError wraps a failed metadata retrieval. Typical causes are private,
// deleted or region-locked videos.
type FetchError struct {
	VideoID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch video %s: %v", e.VideoID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Metadata holds the video fields relevant to recipe extraction.
type Metadata struct {
	VideoID       string
	Title         string
	Description   string
	ChannelName   string
	ChannelID     string
	ChannelURL    string
	ThumbnailURL  string
	PinnedComment string
}

// Comment is a single top-level video comment.
type Comment struct {
	Text            string
	AuthorName      string
	AuthorChannelID string
	IsAuthor        bool
	Pinned          bool
}

// Content is everything extracted from one video: metadata, transcript and
// the URL candidates already pulled out of the description and comments.
type Content struct {
	Metadata       Metadata
	Transcript     string
	ExtractedURLs  []string
	PatternURLs    []string
	AuthorComments []string
	HasLinkInBio   bool
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?.*?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/(?:shorts|live|v)/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of any of the URL
// shapes YouTube uses: watch, youtu.be, embed, shorts, live, /v/ and their
// mobile variants. Returns "" when no ID is found.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// AuthorComments returns the text of comments left by the channel owner.
// Creators often post the recipe link as a comment instead of in the
// description.
func AuthorComments(comments []Comment) []string {
	var texts []string
	for _, c := range comments {
		if c.IsAuthor && c.Text != "" {
			texts = append(texts, c.Text)
		}
	}
	return texts
}

// PinnedComment returns the text of the first pinned comment, or "".
func PinnedComment(comments []Comment) string {
	for _, c := range comments {
		if c.Pinned {
			return c.Text
		}
	}
	return ""
}

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/recipe-saver/backend/internal/extraction/sites"
)

const (
	oembedURL    = "https://www.youtube.com/oembed"
	watchURL     = "https://www.youtube.com/watch"
	browserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultMaxTranscript = 15000
)

// Client fetches video content. All methods are safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	maxTranscript int
}

// NewClient builds a Client. A nil httpClient gets a 15 second timeout;
// maxTranscript <= 0 uses the 15000 character default.
func NewClient(httpClient *http.Client, maxTranscript int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if maxTranscript <= 0 {
		maxTranscript = defaultMaxTranscript
	}
	return &Client{httpClient: httpClient, maxTranscript: maxTranscript}
}

// FetchContent extracts everything available for a video: metadata,
// transcript, comments and the URL candidates found in them. Metadata is
// required and its failure is returned as a FetchError; transcript and
// comments are best-effort.
func (c *Client) FetchContent(ctx context.Context, videoURL string) (*Content, error) {
	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("%s: %w", videoURL, ErrInvalidURL)
	}

	meta, err := c.fetchOEmbed(ctx, videoID)
	if err != nil {
		return nil, &FetchError{VideoID: videoID, Err: err}
	}

	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		// The video exists (oEmbed succeeded); carry on without the
		// description and captions rather than failing the extraction.
		page = &watchPage{}
	}

	meta.Description = page.description
	meta.ChannelID = page.channelID

	content := &Content{Metadata: *meta}

	if transcript, err := c.fetchTranscript(ctx, page.captionTracks); err == nil {
		content.Transcript = transcript
	}

	comments, err := c.fetchComments(ctx, videoID, page)
	if err == nil {
		content.Metadata.PinnedComment = PinnedComment(comments)
		content.AuthorComments = AuthorComments(comments)
	}

	allText := content.Metadata.Description + "\n" + content.Metadata.PinnedComment
	content.ExtractedURLs = sites.ExtractURLs(allText)
	content.PatternURLs = sites.PatternLinks(allText)
	content.HasLinkInBio = sites.HasLinkInBio(allText)

	return content, nil
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// get issues a GET with one retry on network errors and 5xx responses. 4xx
// responses come back to the caller, which knows what they mean.
func (c *Client) get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

// fetchOEmbed resolves the basics (title, channel, thumbnail) and doubles as
// the existence check: private and deleted videos return errors here.
func (c *Client) fetchOEmbed(ctx context.Context, videoID string) (*Metadata, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("url", watchURL+"?v="+videoID)

	resp, err := c.get(ctx, oembedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var data oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	return &Metadata{
		VideoID:      videoID,
		Title:        data.Title,
		ChannelName:  data.AuthorName,
		ChannelURL:   data.AuthorURL,
		ThumbnailURL: data.ThumbnailURL,
	}, nil
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// watchPage holds the fields scraped out of the embedded player payload on a
// watch page.
type watchPage struct {
	description   string
	channelID     string
	innertubeKey  string
	captionTracks []captionTrack
}

var (
	descriptionPattern   = regexp.MustCompile(`"shortDescription":("(?:[^"\\]|\\.)*")`)
	channelIDPattern     = regexp.MustCompile(`"channelId":"([^"]+)"`)
	innertubeKeyPattern  = regexp.MustCompile(`"INNERTUBE_API_KEY":"([^"]+)"`)
	captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])[,}]`)
)

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (*watchPage, error) {
	resp, err := c.get(ctx, watchURL+"?v="+videoID, map[string]string{
		"User-Agent":      browserAgent,
		"Accept-Language": "en-US,en;q=0.9",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseWatchPage(string(body)), nil
}

// parseWatchPage scrapes the player payload fields out of watch page HTML.
// Every field is optional; missing pieces stay zero-valued.
func parseWatchPage(html string) *watchPage {
	page := &watchPage{}

	if m := descriptionPattern.FindStringSubmatch(html); m != nil {
		// The capture is a JSON string literal; unmarshal handles the
		// escape sequences.
		var description string
		if err := json.Unmarshal([]byte(m[1]), &description); err == nil {
			page.description = description
		}
	}

	if m := channelIDPattern.FindStringSubmatch(html); m != nil {
		page.channelID = m[1]
	}

	if m := innertubeKeyPattern.FindStringSubmatch(html); m != nil {
		page.innertubeKey = m[1]
	}

	if m := captionTracksPattern.FindStringSubmatch(html); m != nil {
		var tracks []captionTrack
		if err := json.Unmarshal([]byte(m[1]), &tracks); err == nil {
			page.captionTracks = tracks
		}
	}

	return page
}

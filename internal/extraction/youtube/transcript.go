package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

// fetchTranscript downloads the best available caption track and flattens it
// into plain text, truncated to the configured maximum.
func (c *Client) fetchTranscript(ctx context.Context, tracks []captionTrack) (string, error) {
	track := pickTrack(tracks)
	if track == nil {
		return "", fmt.Errorf("no caption tracks")
	}

	resp, err := c.get(ctx, track.BaseURL, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	transcript := parseTimedText(body)
	if transcript == "" {
		return "", fmt.Errorf("empty transcript")
	}

	return truncate(transcript, c.maxTranscript), nil
}

// pickTrack prefers English captions, falling back to whatever exists.
func pickTrack(tracks []captionTrack) *captionTrack {
	if len(tracks) == 0 {
		return nil
	}
	for i := range tracks {
		code := strings.ToLower(tracks[i].LanguageCode)
		if code == "en" || strings.HasPrefix(code, "en-") {
			return &tracks[i]
		}
	}
	return &tracks[0]
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText joins the caption segments of a timedtext document into one
// string. Caption text is double-escaped (&amp;#39; inside the XML), so the
// chardata gets one more unescape pass.
func parseTimedText(body []byte) string {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return ""
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Value))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	innertubeURL     = "https://www.youtube.com/youtubei/v1/next"
	innertubeClient  = "WEB"
	innertubeVersion = "2.20240101.00.00"
)

// fetchComments pulls the first page of top comments through the InnerTube
// endpoint the watch page itself uses. Needs the API key scraped from the
// page; returns an error when the key is missing or the comment section is
// unavailable (comments disabled, live streams).
func (c *Client) fetchComments(ctx context.Context, videoID string, page *watchPage) ([]Comment, error) {
	if page.innertubeKey == "" {
		return nil, fmt.Errorf("no innertube key")
	}

	first, err := c.innertubeNext(ctx, page.innertubeKey, map[string]any{"videoId": videoID})
	if err != nil {
		return nil, err
	}

	token := commentsContinuation(first)
	if token == "" {
		return nil, fmt.Errorf("no comment continuation")
	}

	second, err := c.innertubeNext(ctx, page.innertubeKey, map[string]any{"continuation": token})
	if err != nil {
		return nil, err
	}

	comments := parseComments(second)
	if len(comments) == 0 {
		return nil, fmt.Errorf("no comments")
	}
	return comments, nil
}

func (c *Client) innertubeNext(ctx context.Context, apiKey string, fields map[string]any) (any, error) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClient,
				"clientVersion": innertubeVersion,
			},
		},
	}
	for k, v := range fields {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, innertubeURL+"?key="+apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("innertube status %d", resp.StatusCode)
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// commentsContinuation digs the comment section's continuation token out of
// the initial next response.
func commentsContinuation(data any) string {
	for _, section := range findAll(data, "itemSectionRenderer") {
		node, ok := section.(map[string]any)
		if !ok {
			continue
		}
		if id, _ := node["sectionIdentifier"].(string); id != "comment-item-section" {
			continue
		}
		for _, token := range findAll(node, "token") {
			if s, ok := token.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// parseComments handles both response shapes InnerTube serves: the legacy
// commentRenderer nodes and the newer commentEntityPayload mutations.
func parseComments(data any) []Comment {
	var comments []Comment

	for _, raw := range findAll(data, "commentRenderer") {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		comment := Comment{
			Text:            runsText(find(node, "contentText")),
			AuthorName:      stringAt(node, "authorText", "simpleText"),
			AuthorChannelID: stringAt(node, "authorEndpoint", "browseEndpoint", "browseId"),
		}
		if isOwner, ok := node["authorIsChannelOwner"].(bool); ok {
			comment.IsAuthor = isOwner
		}
		if find(node, "pinnedCommentBadge") != nil {
			comment.Pinned = true
		}
		if comment.Text != "" {
			comments = append(comments, comment)
		}
	}

	for _, raw := range findAll(data, "commentEntityPayload") {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		comment := Comment{
			Text:            stringAt(node, "properties", "content", "content"),
			AuthorName:      stringAt(node, "author", "displayName"),
			AuthorChannelID: stringAt(node, "author", "channelId"),
		}
		if author, ok := node["author"].(map[string]any); ok {
			if isCreator, ok := author["isCreator"].(bool); ok {
				comment.IsAuthor = isCreator
			}
		}
		if comment.Text != "" {
			comments = append(comments, comment)
		}
	}

	return comments
}

// runsText flattens a {"runs": [{"text": ...}, ...]} node into plain text.
func runsText(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	runs, ok := m["runs"].([]any)
	if !ok {
		return ""
	}
	var text string
	for _, run := range runs {
		if r, ok := run.(map[string]any); ok {
			if s, ok := r["text"].(string); ok {
				text += s
			}
		}
	}
	return text
}

// stringAt walks a chain of map keys and returns the string at the end.
func stringAt(node map[string]any, keys ...string) string {
	cur := any(node)
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}

// find returns the first value for key anywhere in a decoded JSON tree.
func find(data any, key string) any {
	switch node := data.(type) {
	case map[string]any:
		if v, ok := node[key]; ok {
			return v
		}
		for _, v := range node {
			if found := find(v, key); found != nil {
				return found
			}
		}
	case []any:
		for _, v := range node {
			if found := find(v, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// findAll returns every value for key anywhere in a decoded JSON tree, in
// traversal order.
func findAll(data any, key string) []any {
	var results []any
	switch node := data.(type) {
	case map[string]any:
		if v, ok := node[key]; ok {
			results = append(results, v)
		}
		for _, v := range node {
			results = append(results, findAll(v, key)...)
		}
	case []any:
		for _, v := range node {
			results = append(results, findAll(v, key)...)
		}
	}
	return results
}

package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ":                 "dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ":               "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?app=desktop&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s":       "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                            "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=abc123":                  "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":               "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":              "dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ":                "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":                   "dQw4w9WgXcQ",
		"https://www.youtube.com/@somechannel":                    "",
		"https://example.com/watch?v=dQw4w9WgXcQ":                 "",
		"not a url":                                               "",
		"":                                                        "",
	}

	for input, want := range cases {
		assert.Equal(t, want, ExtractVideoID(input), "input: %s", input)
	}
}

func TestPinnedComment(t *testing.T) {
	comments := []Comment{
		{Text: "first!", AuthorName: "fan"},
		{Text: "Full recipe at example.com/pasta", AuthorName: "creator", IsAuthor: true, Pinned: true},
		{Text: "looks great", AuthorName: "someone"},
	}

	assert.Equal(t, "Full recipe at example.com/pasta", PinnedComment(comments))
	assert.Equal(t, "", PinnedComment(nil))
	assert.Equal(t, "", PinnedComment([]Comment{{Text: "hi"}}))
}

func TestAuthorComments(t *testing.T) {
	comments := []Comment{
		{Text: "first!", AuthorName: "fan"},
		{Text: "Recipe link below", IsAuthor: true},
		{Text: "thanks all", IsAuthor: true},
		{Text: "", IsAuthor: true},
	}

	assert.Equal(t, []string{"Recipe link below", "thanks all"}, AuthorComments(comments))
	assert.Empty(t, AuthorComments(nil))
}

package youtube

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.4">today we&amp;#39;re making</text>
  <text start="2.52" dur="3.1">creamy garlic pasta</text>
  <text start="5.62" dur="2.0">you&amp;#39;ll need 2 cups of cream &amp;amp; garlic</text>
  <text start="7.62" dur="1.0">  </text>
</transcript>`

func TestParseTimedText(t *testing.T) {
	got := parseTimedText([]byte(timedTextXML))
	assert.Equal(t, "today we're making creamy garlic pasta you'll need 2 cups of cream & garlic", got)
}

func TestParseTimedTextInvalid(t *testing.T) {
	assert.Equal(t, "", parseTimedText([]byte("not xml at all <")))
	assert.Equal(t, "", parseTimedText(nil))
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "http://x/de", LanguageCode: "de"},
		{BaseURL: "http://x/en-GB", LanguageCode: "en-GB"},
		{BaseURL: "http://x/en", LanguageCode: "en"},
	}

	picked := pickTrack(tracks)
	require.NotNil(t, picked)
	assert.Equal(t, "en-GB", picked.LanguageCode)

	picked = pickTrack(tracks[:1])
	require.NotNil(t, picked)
	assert.Equal(t, "de", picked.LanguageCode)

	assert.Nil(t, pickTrack(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abcde...", truncate("abcdefghij", 5))

	long := strings.Repeat("héllo ", 10)
	got := truncate(long, 10)
	assert.Equal(t, "héllo héll...", got)
}

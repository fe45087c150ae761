package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCacheKeyNormalizesURL(t *testing.T) {
	c := NewExtractCache(nil)

	plain := c.key("https://www.youtube.com/watch?v=abc12345678")
	shared := c.key("https://youtu.be/abc12345678?si=tracking123")
	assert.Equal(t, plain, shared)

	other := c.key("https://www.youtube.com/watch?v=differentvid")
	assert.NotEqual(t, plain, other)
}

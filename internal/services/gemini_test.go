package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "abc", truncateUTF8("abc", 10))
	assert.Equal(t, "ab", truncateUTF8("abc", 2))

	// "é" is two bytes; a cut through it drops the whole rune
	assert.Equal(t, "a", truncateUTF8("aé", 2))
	assert.Equal(t, "aé", truncateUTF8("aé", 3))

	long := strings.Repeat("日本語", maxEmbedBytes)
	got := truncateUTF8(long, maxEmbedBytes)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxEmbedBytes)
	assert.Greater(t, len(got), maxEmbedBytes-utf8.UTFMax)
}

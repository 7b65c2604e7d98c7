package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownSanitises(t *testing.T) {
	out := RenderMarkdown("# Title\n\n<script>alert(1)</script>\n\n**bold**")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdownCodeAndImages(t *testing.T) {
	out := RenderMarkdown("```go\nfmt.Println(1)\n```\n\n![x](https://example.com/a.png)")
	assert.Contains(t, out, `data-lang="go"`)
	assert.Contains(t, out, `loading="lazy"`)
}

func TestRenderMarkdownLinks(t *testing.T) {
	out := RenderMarkdown("[docs](https://go.dev) and [bad](javascript:alert(1))")
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noreferrer")
	assert.NotContains(t, out, "javascript:")
}

func TestEnhanceHTMLContentWrapsTables(t *testing.T) {
	out := EnhanceHTMLContent("<table><tr><td>1</td></tr></table>")
	assert.True(t, strings.HasPrefix(out, `<div class="table-wrapper"><table>`), out)
	assert.Empty(t, EnhanceHTMLContent(""))
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(4)
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, -time.Second)

	assert.Equal(t, 1, c.Get("a"))
	assert.Nil(t, c.Get("b"))

	c.Delete("a")
	assert.Nil(t, c.Get("a"))
}

func TestCalculateHotScore(t *testing.T) {
	now := time.Now()
	assert.Zero(t, CalculateHotScore(now, 0, 0, 0, 0, false))
	assert.Zero(t, CalculateHotScore(now, 0, 10, 0, 0, false))

	busy := CalculateHotScore(now, 10, 0, 3, 100, true)
	quiet := CalculateHotScore(now, 1, 0, 0, 0, false)
	old := CalculateHotScore(now.Add(-72*time.Hour), 10, 0, 3, 100, true)
	assert.Greater(t, busy, quiet)
	assert.Greater(t, busy, old)
}

func TestGetUserLevel(t *testing.T) {
	name, _ := GetUserLevel(-5)
	assert.Equal(t, "Newcomer", name)
	name, _ = GetUserLevel(50)
	assert.Equal(t, "Contributor", name)
	name, _ = GetUserLevel(1000)
	assert.Equal(t, "Guru", name)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

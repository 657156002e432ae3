package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessHTMLContentAddsClasses(t *testing.T) {
	in := `<h2>Intro</h2><p>Hello</p>`
	out := ProcessHTMLContent(in)

	assert.Contains(t, out, `<h2 class="content-heading">`)
	assert.Contains(t, out, `<p class="content-text">`)
}

func TestProcessHTMLContentPreservesAttributes(t *testing.T) {
	in := `<a href="/pricing">Plans</a>`
	out := ProcessHTMLContent(in)

	assert.Equal(t, `<a href="/pricing" class="content-link">Plans</a>`, out)
	assert.NotContains(t, out, "$1")
}

func TestProcessHTMLContentKeepsExistingClasses(t *testing.T) {
	in := `<p class="lead">Hello</p>`
	out := ProcessHTMLContent(in)

	assert.Equal(t, in, out)
}

func TestGetGravatarURL(t *testing.T) {
	url := GetGravatarURL("  User@Example.COM ", 128)

	assert.True(t, strings.HasPrefix(url, "https://www.gravatar.com/avatar/"))
	assert.Contains(t, url, "s=128")
	// normalization: same hash as the trimmed, lowercased address
	assert.Equal(t, GetGravatarURL("user@example.com", 128), url)
}

func TestGetGravatarURLDefaultSize(t *testing.T) {
	assert.Contains(t, GetGravatarURL("user@example.com", 0), "s=200")
}

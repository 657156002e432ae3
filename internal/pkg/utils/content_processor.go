package utils

import (
	"regexp"
	"strings"
)

// ProcessHTMLContent decorates CMS-authored HTML with the site's content
// classes so admin-entered markup picks up the house styling.
func ProcessHTMLContent(content string) string {
	replacements := map[string]string{
		`<h2([^>]*)>`:         `<h2$1 class="content-heading">`,
		`<h3([^>]*)>`:         `<h3$1 class="content-subheading">`,
		`<p([^>]*)>`:          `<p$1 class="content-text">`,
		`<ul([^>]*)>`:         `<ul$1 class="content-list">`,
		`<ol([^>]*)>`:         `<ol$1 class="content-list">`,
		`<blockquote([^>]*)>`: `<blockquote$1 class="content-quote">`,
		`<table([^>]*)>`:      `<table$1 class="table">`,
		`<code([^>]*)>`:       `<code$1 class="content-code">`,
		`<pre([^>]*)>`:        `<pre$1 class="content-pre">`,
		`<a([^>]*)>`:          `<a$1 class="content-link">`,
		`<img([^>]*)>`:        `<img$1 class="content-image">`,
	}

	processed := content

	for pattern, replacement := range replacements {
		// Only replace if the element doesn't already have a class attribute
		re := regexp.MustCompile(pattern)
		matches := re.FindAllStringSubmatch(processed, -1)

		for _, match := range matches {
			if len(match) > 1 && !strings.Contains(match[1], "class=") {
				// strings.Replace does not expand $1, splice the captured
				// attributes in by hand.
				tag := strings.Replace(replacement, "$1", match[1], 1)
				processed = strings.Replace(processed, match[0], tag, 1)
			}
		}
	}

	return processed
}

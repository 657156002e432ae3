package controllers

import (
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/env"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/metrics/counter"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/utils"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/viewmodel"
)

const blogPageSize = 10

// HandleBlogIndex renders the public blog listing, optionally filtered
// by category.
func HandleBlogIndex(c *fiber.Ctx) error {
	postRepo := repository.GetGlobalFactory().GetPostRepository()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * blogPageSize

	category := strings.TrimSpace(c.Query("category"))
	var (
		posts []models.Post
		err   error
	)
	if category != "" {
		posts, err = postRepo.GetPublishedByCategory(category, offset, blogPageSize)
	} else {
		posts, err = postRepo.GetPublished(offset, blogPageSize)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch blog posts")
	}

	total, _ := postRepo.CountPublished()
	layout := newLayout(c, "Blog")
	layout.OGViewModel = &viewmodel.OpenGraph{
		Title:       "Lead Call Pro Blog",
		Description: "Lead generation tips and local marketing guides",
		URL:         env.PublicBaseURL() + "/blog",
	}
	return renderPage(c, "blog/index", layout, fiber.Map{
		"Posts":    posts,
		"Category": category,
		"PageNum":  page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasNext":  int64(offset+blogPageSize) < total,
		"HasPrev":  page > 1,
	})
}

// HandleBlogShow renders a single published post by slug.
func HandleBlogShow(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := repository.GetGlobalFactory().GetPostRepository().GetBySlug(slug)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	// View counts are buffered in Redis and flushed in batches.
	_ = counter.AddPostView(post.ID)

	layout := newLayout(c, post.Title)
	layout.OGViewModel = &viewmodel.OpenGraph{
		Title:       post.Title,
		Description: stripHTMLAndTruncate(post.Excerpt, 150),
		URL:         env.PublicBaseURL() + "/blog/" + post.Slug,
	}
	return renderPage(c, "blog/show", layout, fiber.Map{
		"Post":    post,
		"Content": template.HTML(utils.ProcessHTMLContent(post.Content)),
	})
}

// HandleBlogRSS serves the blog feed as RSS 2.0.
func HandleBlogRSS(c *fiber.Ctx) error {
	posts, err := repository.GetGlobalFactory().GetPostRepository().GetPublished(0, 20)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch blog posts")
	}

	base := env.PublicBaseURL()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0"><channel>`)
	b.WriteString("<title>Lead Call Pro Blog</title>")
	b.WriteString(fmt.Sprintf("<link>%s/blog</link>", base))
	b.WriteString("<description>Lead generation tips and local marketing guides</description>")
	for _, post := range posts {
		b.WriteString("<item>")
		b.WriteString(fmt.Sprintf("<title>%s</title>", xmlEscape(post.Title)))
		b.WriteString(fmt.Sprintf("<link>%s/blog/%s</link>", base, post.Slug))
		b.WriteString(fmt.Sprintf("<guid>%s/blog/%s</guid>", base, post.Slug))
		b.WriteString(fmt.Sprintf("<description>%s</description>", xmlEscape(post.Excerpt)))
		b.WriteString(fmt.Sprintf("<pubDate>%s</pubDate>", post.CreatedAt.Format(time.RFC1123Z)))
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.SendString(b.String())
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLAndTruncate removes markup and shortens text for previews
func stripHTMLAndTruncate(html string, maxLength int) string {
	text := strings.TrimSpace(htmlTagPattern.ReplaceAllString(html, ""))
	if len(text) <= maxLength {
		return text
	}
	if idx := strings.LastIndex(text[:maxLength], " "); idx > 0 {
		return text[:idx] + "..."
	}
	return text[:maxLength] + "..."
}

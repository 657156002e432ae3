package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/usercontext"
)

// AdminPostController handles admin blog management using the repository pattern
type AdminPostController struct {
	postRepo repository.PostRepository
}

// NewAdminPostController creates a new admin post controller with repository
func NewAdminPostController(postRepo repository.PostRepository) *AdminPostController {
	return &AdminPostController{
		postRepo: postRepo,
	}
}

// handleError is a helper method for consistent error handling
func (apc *AdminPostController) handleError(c *fiber.Ctx, message string, err error) error {
	return flashError(c, message+": "+err.Error(), "/admin/posts")
}

// HandleAdminPosts renders the blog management page
func (apc *AdminPostController) HandleAdminPosts(c *fiber.Ctx) error {
	posts, err := apc.postRepo.GetAll(0, 200)
	if err != nil {
		return apc.handleError(c, "Failed to load blog posts", err)
	}

	return renderPage(c, "admin/posts", newLayout(c, "Blog Management"), fiber.Map{
		"Posts": posts,
	})
}

// HandleAdminPostCreate renders the post creation form
func (apc *AdminPostController) HandleAdminPostCreate(c *fiber.Ctx) error {
	return renderPage(c, "admin/post_form", newLayout(c, "New Blog Post"), nil)
}

// HandleAdminPostStore handles post creation
func (apc *AdminPostController) HandleAdminPostStore(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")
	slug := strings.TrimSpace(c.FormValue("slug"))
	if title == "" || content == "" || slug == "" {
		return flashError(c, "Title, slug and content are required", "/admin/posts/create")
	}

	slugExists, err := apc.postRepo.SlugExists(slug)
	if err != nil {
		return apc.handleError(c, "Failed to check slug", err)
	}
	if slugExists {
		return flashError(c, "This slug is already in use", "/admin/posts/create")
	}

	post := &models.Post{
		Title:     title,
		Slug:      slug,
		Excerpt:   strings.TrimSpace(c.FormValue("excerpt")),
		Content:   content,
		Category:  strings.TrimSpace(c.FormValue("category")),
		Published: c.FormValue("published") == "1",
		UserID:    userCtx.UserID,
	}
	if err := apc.postRepo.Create(post); err != nil {
		return apc.handleError(c, "Failed to save blog post", err)
	}

	return flashSuccess(c, "Blog post created.", "/admin/posts")
}

// HandleAdminPostEdit renders the post edit form
func (apc *AdminPostController) HandleAdminPostEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid post id", "/admin/posts")
	}
	post, err := apc.postRepo.GetByID(uint(id))
	if err != nil {
		return apc.handleError(c, "Blog post not found", err)
	}

	return renderPage(c, "admin/post_form", newLayout(c, "Edit Blog Post"), fiber.Map{
		"Post": post,
	})
}

// HandleAdminPostUpdate handles post updates
func (apc *AdminPostController) HandleAdminPostUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid post id", "/admin/posts")
	}
	post, err := apc.postRepo.GetByID(uint(id))
	if err != nil {
		return apc.handleError(c, "Blog post not found", err)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")
	slug := strings.TrimSpace(c.FormValue("slug"))
	if title == "" || content == "" || slug == "" {
		return flashError(c, "Title, slug and content are required", "/admin/posts")
	}

	slugExists, err := apc.postRepo.SlugExistsExceptID(slug, post.ID)
	if err != nil {
		return apc.handleError(c, "Failed to check slug", err)
	}
	if slugExists {
		return flashError(c, "This slug is already in use", "/admin/posts")
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = strings.TrimSpace(c.FormValue("excerpt"))
	post.Content = content
	post.Category = strings.TrimSpace(c.FormValue("category"))
	post.Published = c.FormValue("published") == "1"

	if err := apc.postRepo.Update(post); err != nil {
		return apc.handleError(c, "Failed to save blog post", err)
	}

	return flashSuccess(c, "Blog post updated.", "/admin/posts")
}

// HandleAdminPostDelete handles post deletion
func (apc *AdminPostController) HandleAdminPostDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid post id", "/admin/posts")
	}
	if err := apc.postRepo.Delete(uint(id)); err != nil {
		return apc.handleError(c, "Failed to delete blog post", err)
	}

	return flashSuccess(c, "Blog post deleted.", "/admin/posts")
}

package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
)

// AdminPageController handles static page management using the repository pattern
type AdminPageController struct {
	pageRepo repository.PageRepository
}

// NewAdminPageController creates a new admin page controller with repository
func NewAdminPageController(pageRepo repository.PageRepository) *AdminPageController {
	return &AdminPageController{
		pageRepo: pageRepo,
	}
}

func (apc *AdminPageController) handleError(c *fiber.Ctx, message string, err error) error {
	return flashError(c, message+": "+err.Error(), "/admin/pages")
}

// HandleAdminPages renders the page management overview
func (apc *AdminPageController) HandleAdminPages(c *fiber.Ctx) error {
	pages, err := apc.pageRepo.GetAll()
	if err != nil {
		return apc.handleError(c, "Failed to load pages", err)
	}

	return renderPage(c, "admin/pages", newLayout(c, "Page Management"), fiber.Map{
		"Pages": pages,
	})
}

// HandleAdminPageCreate renders the page creation form
func (apc *AdminPageController) HandleAdminPageCreate(c *fiber.Ctx) error {
	return renderPage(c, "admin/page_form", newLayout(c, "New Page"), nil)
}

// HandleAdminPageStore handles page creation
func (apc *AdminPageController) HandleAdminPageStore(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")
	slug := strings.TrimSpace(c.FormValue("slug"))
	if title == "" || content == "" || slug == "" {
		return flashError(c, "Title, slug and content are required", "/admin/pages/create")
	}

	slugExists, err := apc.pageRepo.SlugExists(slug)
	if err != nil {
		return apc.handleError(c, "Failed to check slug", err)
	}
	if slugExists {
		return flashError(c, "This slug is already in use", "/admin/pages/create")
	}

	page := &models.Page{
		Title:    title,
		Slug:     slug,
		Content:  content,
		IsActive: c.FormValue("is_active") == "1",
	}
	if err := apc.pageRepo.Create(page); err != nil {
		return apc.handleError(c, "Failed to save page", err)
	}

	return flashSuccess(c, "Page created.", "/admin/pages")
}

// HandleAdminPageEdit renders the page edit form
func (apc *AdminPageController) HandleAdminPageEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid page id", "/admin/pages")
	}
	page, err := apc.pageRepo.GetByID(uint(id))
	if err != nil {
		return apc.handleError(c, "Page not found", err)
	}

	return renderPage(c, "admin/page_form", newLayout(c, "Edit Page"), fiber.Map{
		"PageModel": page,
	})
}

// HandleAdminPageUpdate handles page updates
func (apc *AdminPageController) HandleAdminPageUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid page id", "/admin/pages")
	}
	page, err := apc.pageRepo.GetByID(uint(id))
	if err != nil {
		return apc.handleError(c, "Page not found", err)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")
	slug := strings.TrimSpace(c.FormValue("slug"))
	if title == "" || content == "" || slug == "" {
		return flashError(c, "Title, slug and content are required", "/admin/pages")
	}

	slugExists, err := apc.pageRepo.SlugExistsExceptID(slug, page.ID)
	if err != nil {
		return apc.handleError(c, "Failed to check slug", err)
	}
	if slugExists {
		return flashError(c, "This slug is already in use", "/admin/pages")
	}

	page.Title = title
	page.Slug = slug
	page.Content = content
	page.IsActive = c.FormValue("is_active") == "1"

	if err := apc.pageRepo.Update(page); err != nil {
		return apc.handleError(c, "Failed to save page", err)
	}

	return flashSuccess(c, "Page updated.", "/admin/pages")
}

// HandleAdminPageDelete handles page deletion
func (apc *AdminPageController) HandleAdminPageDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid page id", "/admin/pages")
	}
	if err := apc.pageRepo.Delete(uint(id)); err != nil {
		return apc.handleError(c, "Failed to delete page", err)
	}

	return flashSuccess(c, "Page deleted.", "/admin/pages")
}

package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/app/repository"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/statistics"
)

const adminUserPageSize = 50

// HandleAdminDashboard renders the admin overview with platform counts.
func HandleAdminDashboard(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory()

	userCount, _ := repos.GetUserRepository().Count()
	postCount, _ := repos.GetPostRepository().Count()
	stats := statistics.GetStatisticsData()

	return renderPage(c, "admin/dashboard", newLayout(c, "Admin"), fiber.Map{
		"UserCount":       userCount,
		"PostCount":       postCount,
		"TotalBusinesses": stats.TotalBusinesses,
		"ActiveCampaigns": stats.ActiveCampaigns,
	})
}

// HandleAdminUsers renders the user management page with optional search.
func HandleAdminUsers(c *fiber.Ctx) error {
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	var (
		users []models.User
		err   error
	)
	query := strings.TrimSpace(c.Query("q"))
	if query != "" {
		users, err = userRepo.Search(query)
	} else {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		if page < 1 {
			page = 1
		}
		users, err = userRepo.List((page-1)*adminUserPageSize, adminUserPageSize)
	}
	if err != nil {
		return flashError(c, "Failed to load users: "+err.Error(), "/admin")
	}

	return renderPage(c, "admin/users", newLayout(c, "User Management"), fiber.Map{
		"Users": users,
		"Query": query,
	})
}

// HandleAdminUserToggleStatus enables or disables a user account.
func HandleAdminUserToggleStatus(c *fiber.Ctx) error {
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return flashError(c, "Invalid user id", "/admin/users")
	}
	user, err := userRepo.GetByID(uint(id))
	if err != nil {
		return flashError(c, "User not found", "/admin/users")
	}
	if user.IsAdmin() {
		return flashError(c, "Admin accounts cannot be disabled", "/admin/users")
	}

	if user.Status == models.STATUS_DISABLED {
		user.Status = models.STATUS_ACTIVE
	} else {
		user.Status = models.STATUS_DISABLED
	}
	if err := userRepo.Update(user); err != nil {
		return flashError(c, "User could not be saved", "/admin/users")
	}

	return flashSuccess(c, "User is now "+user.Status+".", "/admin/users")
}

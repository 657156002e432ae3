package viewmodel

import "github.com/gofiber/fiber/v2"

// Layout carries the per-request data every rendered page needs.
type Layout struct {
	Page        string
	IsLoggedIn  bool
	IsAdmin     bool
	Username    string
	Plan        string
	Msg         fiber.Map
	OGViewModel *OpenGraph
}

// OpenGraph holds the meta tags for social previews.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	URL         string
}

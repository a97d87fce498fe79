package server

import (
	"github.com/gofiber/fiber/v2"

	"retroexchange/internal/hateoas"
)

// APIRoot handles GET /api: the discovery resource exposing top-level links.
func (s *Server) APIRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name": "Retro Game Exchange API",
		"_links": hateoas.Links{
			"register":        {Href: "/api/users", Method: "POST"},
			"login":           {Href: "/api/auth/token", Method: "POST"},
			"me":              {Href: "/api/users/me"},
			"games":           {Href: "/api/games"},
			"offers":          {Href: "/api/offers", Method: "POST"},
			"incoming_offers": {Href: "/api/offers/incoming"},
			"outgoing_offers": {Href: "/api/offers/outgoing"},
		},
	})
}

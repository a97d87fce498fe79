package server

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"retroexchange/internal/hateoas"
	"retroexchange/internal/models"
)

type registerRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8,max=72"` // bcrypt limit (72 bytes)
	StreetAddress string `json:"street_address" validate:"required,max=400"`
}

type userUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	StreetAddress *string `json:"street_address" validate:"omitempty,min=1,max=400"`
}

type userResponse struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	StreetAddress string        `json:"street_address"`
	Links         hateoas.Links `json:"_links"`
}

func toUserResponse(user *models.User, isSelf bool) userResponse {
	return userResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		StreetAddress: user.StreetAddress,
		Links:         hateoas.UserLinks(user.ID, isSelf),
	}
}

// RegisterUser handles POST /api/users.
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	var req registerRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:          req.Name,
		Email:         strings.ToLower(req.Email),
		PasswordHash:  string(hashed),
		StreetAddress: req.StreetAddress,
	}

	// A duplicate email surfaces here as a conflict after the insert rolls back.
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondRepoError(c, err)
	}

	c.Set("Location", fmt.Sprintf("/api/users/%d", user.ID))
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user, true))
}

// GetMe handles GET /api/users/me.
func (s *Server) GetMe(c *fiber.Ctx) error {
	return c.JSON(toUserResponse(s.currentUser(c), true))
}

// GetUser handles GET /api/users/:id. Links differ when the caller is
// looking at their own profile.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	isSelf := s.currentUser(c).ID == user.ID
	return c.JSON(toUserResponse(user, isSelf))
}

// UpdateUser handles PUT /api/users/:id. Absent fields are left unchanged.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	current := s.currentUser(c)
	if current.ID != id {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You may only update your own user details"))
	}

	var req userUpdateRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.StreetAddress != nil {
		user.StreetAddress = *req.StreetAddress
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(toUserResponse(user, true))
}

// DeleteUser handles DELETE /api/users/:id. Removing a user cascades to
// their games and to any offers touching those games.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	current := s.currentUser(c)
	if current.ID != id {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You may only delete your own account"))
	}

	if err := s.userRepo.Delete(c.Context(), id); err != nil {
		return respondRepoError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

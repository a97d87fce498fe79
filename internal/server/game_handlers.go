package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"retroexchange/internal/hateoas"
	"retroexchange/internal/models"
	"retroexchange/internal/repository"
)

type gameCreateRequest struct {
	Name           string           `json:"name" validate:"required,max=200"`
	Publisher      string           `json:"publisher" validate:"required,max=200"`
	YearPublished  int              `json:"year_published" validate:"required,gte=1970,lte=2100"`
	System         string           `json:"system" validate:"required,max=100"`
	Condition      models.Condition `json:"condition" validate:"required,oneof=mint good fair poor"`
	PreviousOwners *int             `json:"previous_owners" validate:"omitempty,gte=0"`
}

type gameUpdateRequest struct {
	Name           *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Publisher      *string           `json:"publisher" validate:"omitempty,min=1,max=200"`
	YearPublished  *int              `json:"year_published" validate:"omitempty,gte=1970,lte=2100"`
	System         *string           `json:"system" validate:"omitempty,min=1,max=100"`
	Condition      *models.Condition `json:"condition" validate:"omitempty,oneof=mint good fair poor"`
	PreviousOwners *int              `json:"previous_owners" validate:"omitempty,gte=0"`
}

type gameResponse struct {
	ID             uint             `json:"id"`
	OwnerID        uint             `json:"owner_id"`
	Name           string           `json:"name"`
	Publisher      string           `json:"publisher"`
	YearPublished  int              `json:"year_published"`
	System         string           `json:"system"`
	Condition      models.Condition `json:"condition"`
	PreviousOwners *int             `json:"previous_owners"`
	Links          hateoas.Links    `json:"_links"`
}

type pagedGamesResponse struct {
	Items    []gameResponse `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
	Links    hateoas.Links  `json:"_links"`
}

// toGameResponse builds the public representation of a game, with mutation
// links only when the viewer owns it.
func toGameResponse(game *models.Game, viewerID uint) gameResponse {
	canModify := game.OwnerID == viewerID
	return gameResponse{
		ID:             game.ID,
		OwnerID:        game.OwnerID,
		Name:           game.Name,
		Publisher:      game.Publisher,
		YearPublished:  game.YearPublished,
		System:         game.System,
		Condition:      game.Condition,
		PreviousOwners: game.PreviousOwners,
		Links:          hateoas.GameLinks(game.ID, game.OwnerID, canModify),
	}
}

// CreateGame handles POST /api/games. The new game is owned by the caller.
func (s *Server) CreateGame(c *fiber.Ctx) error {
	var req gameCreateRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	current := s.currentUser(c)
	game := &models.Game{
		OwnerID:        current.ID,
		Name:           req.Name,
		Publisher:      req.Publisher,
		YearPublished:  req.YearPublished,
		System:         req.System,
		Condition:      req.Condition,
		PreviousOwners: req.PreviousOwners,
	}

	if err := s.gameRepo.Create(c.Context(), game); err != nil {
		return respondRepoError(c, err)
	}

	c.Set("Location", fmt.Sprintf("/api/games/%d", game.ID))
	return c.Status(fiber.StatusCreated).JSON(toGameResponse(game, current.ID))
}

// ListGames handles GET /api/games with optional filters and paging.
func (s *Server) ListGames(c *fiber.Ctx) error {
	filter, params, err := s.parseGameFilter(c)
	if err != nil {
		return nil
	}

	page, pageSize, err := s.parsePaging(c)
	if err != nil {
		return nil
	}

	games, total, err := s.gameRepo.List(c.Context(), filter, page, pageSize)
	if err != nil {
		return respondRepoError(c, err)
	}

	current := s.currentUser(c)
	items := make([]gameResponse, 0, len(games))
	for i := range games {
		items = append(items, toGameResponse(&games[i], current.ID))
	}

	return c.JSON(pagedGamesResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Links:    hateoas.GamesCollectionLinks(page, pageSize, int(total), params, true),
	})
}

// GetGame handles GET /api/games/:id.
func (s *Server) GetGame(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	game, err := s.gameRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(toGameResponse(game, s.currentUser(c).ID))
}

// UpdateGame handles PUT /api/games/:id. Only the owner may update; absent
// fields are left unchanged.
func (s *Server) UpdateGame(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	game, err := s.gameRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	current := s.currentUser(c)
	if game.OwnerID != current.ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may update this game"))
	}

	var req gameUpdateRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	if req.Name != nil {
		game.Name = *req.Name
	}
	if req.Publisher != nil {
		game.Publisher = *req.Publisher
	}
	if req.YearPublished != nil {
		game.YearPublished = *req.YearPublished
	}
	if req.System != nil {
		game.System = *req.System
	}
	if req.Condition != nil {
		game.Condition = *req.Condition
	}
	if req.PreviousOwners != nil {
		game.PreviousOwners = req.PreviousOwners
	}

	if err := s.gameRepo.Update(c.Context(), game); err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(toGameResponse(game, current.ID))
}

// DeleteGame handles DELETE /api/games/:id. Only the owner may delete.
// Offers referencing the game go with it.
func (s *Server) DeleteGame(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	game, err := s.gameRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	if game.OwnerID != s.currentUser(c).ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may delete this game"))
	}

	if err := s.gameRepo.Delete(c.Context(), id); err != nil {
		return respondRepoError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parseGameFilter extracts the listing filters and the url.Values used to
// rebuild them in paging links. On failure it has written the response.
func (s *Server) parseGameFilter(c *fiber.Ctx) (repository.GameFilter, url.Values, error) {
	filter := repository.GameFilter{
		Name:      c.Query("name"),
		Publisher: c.Query("publisher"),
		System:    c.Query("system"),
	}
	params := url.Values{}
	if filter.Name != "" {
		params.Set("name", filter.Name)
	}
	if filter.Publisher != "" {
		params.Set("publisher", filter.Publisher)
	}
	if filter.System != "" {
		params.Set("system", filter.System)
	}

	if raw := c.Query("condition"); raw != "" {
		cond := models.Condition(raw)
		if !cond.Valid() {
			respErr := models.NewValidationError("Request validation failed",
				map[string]any{"condition": "must be one of mint, good, fair, poor"})
			_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity, respErr)
			return filter, nil, respErr
		}
		filter.Condition = cond
		params.Set("condition", raw)
	}

	for _, q := range []struct {
		name string
		dst  **int
	}{
		{"year", &filter.Year},
		{"yearMin", &filter.YearMin},
		{"yearMax", &filter.YearMax},
	} {
		v, ok, err := queryInt(c, q.name)
		if err != nil {
			respErr := models.NewValidationError("Request validation failed",
				map[string]any{q.name: "must be an integer"})
			_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity, respErr)
			return filter, nil, respErr
		}
		if ok {
			val := v
			*q.dst = &val
			params.Set(q.name, strconv.Itoa(v))
		}
	}

	v, ok, err := queryInt(c, "ownerId")
	if err != nil || (ok && v < 0) {
		respErr := models.NewValidationError("Request validation failed",
			map[string]any{"ownerId": "must be a non-negative integer"})
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity, respErr)
		return filter, nil, respErr
	}
	if ok {
		owner := uint(v)
		filter.OwnerID = &owner
		params.Set("ownerId", strconv.Itoa(v))
	}

	return filter, params, nil
}

// parsePaging validates page and pageSize. On failure it has written the
// BAD_PAGING response.
func (s *Server) parsePaging(c *fiber.Ctx) (int, int, error) {
	page := 1
	pageSize := 20

	v, ok, err := queryInt(c, "page")
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewBadPagingError())
		return 0, 0, err
	}
	if ok {
		page = v
	}

	v, ok, err = queryInt(c, "pageSize")
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewBadPagingError())
		return 0, 0, err
	}
	if ok {
		pageSize = v
	}

	if page < 1 || pageSize < 1 || pageSize > 100 {
		respErr := models.NewBadPagingError()
		_ = models.RespondWithError(c, fiber.StatusBadRequest, respErr)
		return 0, 0, respErr
	}

	return page, pageSize, nil
}

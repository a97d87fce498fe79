package server

import (
	"github.com/gofiber/fiber/v2"

	"retroexchange/internal/hateoas"
	"retroexchange/internal/models"
)

type offerCreateRequest struct {
	RequestedGameID uint `json:"requested_game_id" validate:"required"`
	OfferedGameID   uint `json:"offered_game_id" validate:"required"`
}

type offerDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

type offerResponse struct {
	ID              uint               `json:"id"`
	RequestedGameID uint               `json:"requested_game_id"`
	OfferedGameID   uint               `json:"offered_game_id"`
	OffererUserID   uint               `json:"offerer_user_id"`
	Status          models.OfferStatus `json:"status"`
	Links           hateoas.Links      `json:"_links"`
}

type pagedOffersResponse struct {
	Items    []offerResponse `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
	Links    hateoas.Links   `json:"_links"`
}

func toOfferResponse(offer *models.TradeOffer, canDecide bool) offerResponse {
	return offerResponse{
		ID:              offer.ID,
		RequestedGameID: offer.RequestedGameID,
		OfferedGameID:   offer.OfferedGameID,
		OffererUserID:   offer.OffererUserID,
		Status:          offer.Status,
		Links:           hateoas.OfferLinks(offer.ID, canDecide),
	}
}

// canDecide reports whether viewer may act on the offer: the offer must
// still be pending and the viewer must currently own the requested game.
// Ownership is read fresh every time, never cached from offer creation.
func (s *Server) canDecide(c *fiber.Ctx, offer *models.TradeOffer, viewerID uint) bool {
	if offer.Status.Terminal() {
		return false
	}
	requested, err := s.gameRepo.GetByID(c.Context(), offer.RequestedGameID)
	if err != nil {
		return false
	}
	return requested.OwnerID == viewerID
}

// CreateOffer handles POST /api/offers. The caller proposes to trade one of
// their own games for someone else's.
func (s *Server) CreateOffer(c *fiber.Ctx) error {
	var req offerCreateRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	requested, err := s.gameRepo.GetByID(c.Context(), req.RequestedGameID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Requested or offered game"))
	}
	offered, err := s.gameRepo.GetByID(c.Context(), req.OfferedGameID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Requested or offered game"))
	}

	current := s.currentUser(c)

	if requested.OwnerID == current.ID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidOfferError("You cannot request your own game"))
	}

	if offered.OwnerID != current.ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You may only offer a game you own"))
	}

	offer := &models.TradeOffer{
		RequestedGameID: requested.ID,
		OfferedGameID:   offered.ID,
		OffererUserID:   current.ID,
		Status:          models.OfferPending,
	}

	if err := s.offerRepo.Create(c.Context(), offer); err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toOfferResponse(offer, false))
}

// GetOffer handles GET /api/offers/:id. Both parties (and anyone else
// authenticated) may read an offer; only the current owner of the requested
// game sees a decide link while it is pending.
func (s *Server) GetOffer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	offer, err := s.offerRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	viewer := s.currentUser(c)
	return c.JSON(toOfferResponse(offer, s.canDecide(c, offer, viewer.ID)))
}

// IncomingOffers handles GET /api/offers/incoming: offers targeting games
// currently owned by the caller.
func (s *Server) IncomingOffers(c *fiber.Ctx) error {
	current := s.currentUser(c)

	offers, err := s.offerRepo.ListIncoming(c.Context(), current.ID)
	if err != nil {
		return respondRepoError(c, err)
	}

	items := make([]offerResponse, 0, len(offers))
	for i := range offers {
		// The join already guarantees the caller owns the requested game,
		// so only the lifecycle state gates the decide link.
		items = append(items, toOfferResponse(&offers[i], !offers[i].Status.Terminal()))
	}

	return c.JSON(pagedOffersResponse{
		Items:    items,
		Page:     1,
		PageSize: len(items),
		Total:    len(items),
		Links: hateoas.Links{
			"self":     {Href: "/api/offers/incoming"},
			"outgoing": {Href: "/api/offers/outgoing"},
		},
	})
}

// OutgoingOffers handles GET /api/offers/outgoing: offers the caller created.
func (s *Server) OutgoingOffers(c *fiber.Ctx) error {
	current := s.currentUser(c)

	offers, err := s.offerRepo.ListOutgoing(c.Context(), current.ID)
	if err != nil {
		return respondRepoError(c, err)
	}

	items := make([]offerResponse, 0, len(offers))
	for i := range offers {
		// Offerers can never decide their own offer.
		items = append(items, toOfferResponse(&offers[i], false))
	}

	return c.JSON(pagedOffersResponse{
		Items:    items,
		Page:     1,
		PageSize: len(items),
		Total:    len(items),
		Links: hateoas.Links{
			"self":     {Href: "/api/offers/outgoing"},
			"incoming": {Href: "/api/offers/incoming"},
		},
	})
}

// DecideOffer handles POST /api/offers/:id/decision. Only the current owner
// of the requested game may decide, and only while the offer is pending.
func (s *Server) DecideOffer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req offerDecisionRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	offer, err := s.offerRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	requested, err := s.gameRepo.GetByID(c.Context(), offer.RequestedGameID)
	if err != nil {
		return respondRepoError(c, err)
	}

	current := s.currentUser(c)
	if requested.OwnerID != current.ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner of the requested game can decide this offer"))
	}

	if offer.Status.Terminal() {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewOfferAlreadyDecidedError())
	}

	status := models.OfferAccepted
	if req.Decision == "reject" {
		status = models.OfferRejected
	}

	if err := s.offerRepo.UpdateStatus(c.Context(), offer, status); err != nil {
		return respondRepoError(c, err)
	}

	// The offer is terminal now, so no decide link comes back.
	return c.JSON(toOfferResponse(offer, false))
}

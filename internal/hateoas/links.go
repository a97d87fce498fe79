// Package hateoas builds the permission-aware hyperlink maps embedded in every
// resource representation. Builders are pure: the link set is fully determined
// by the resource identity, the viewer's relationship to it, and (for
// collections) the paging state.
package hateoas

import (
	"fmt"
	"net/url"
)

// Link is a single hypermedia affordance. Method is omitted for plain GETs.
type Link struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

// Links maps link names to their targets.
type Links map[string]Link

// UserLinks returns the links for a user resource. Update and game creation
// are only offered to the user themselves.
func UserLinks(userID uint, isSelf bool) Links {
	links := Links{
		"self":         {Href: fmt.Sprintf("/api/users/%d", userID)},
		"games":        {Href: fmt.Sprintf("/api/games?ownerId=%d", userID)},
		"search_games": {Href: "/api/games"},
	}
	if isSelf {
		links["update"] = Link{Href: fmt.Sprintf("/api/users/%d", userID), Method: "PUT"}
		links["create_game"] = Link{Href: "/api/games", Method: "POST"}
	}
	return links
}

// GameLinks returns the links for a game resource. Mutation links are only
// offered to the owning user.
func GameLinks(gameID, ownerID uint, canModify bool) Links {
	links := Links{
		"self":       {Href: fmt.Sprintf("/api/games/%d", gameID)},
		"owner":      {Href: fmt.Sprintf("/api/users/%d", ownerID)},
		"collection": {Href: "/api/games"},
		"search":     {Href: "/api/games"},
	}
	if canModify {
		links["update"] = Link{Href: fmt.Sprintf("/api/games/%d", gameID), Method: "PUT"}
		links["delete"] = Link{Href: fmt.Sprintf("/api/games/%d", gameID), Method: "DELETE"}
	}
	return links
}

// GamesCollectionLinks returns paging links for the game listing. The active
// filter parameters are preserved on every page link; only the page number is
// substituted. next is present iff a later page exists, prev iff page > 1.
func GamesCollectionLinks(page, pageSize, total int, params url.Values, canCreate bool) Links {
	pageURL := func(p int) string {
		qp := url.Values{}
		for k, vs := range params {
			qp[k] = vs
		}
		qp.Set("page", fmt.Sprintf("%d", p))
		qp.Set("pageSize", fmt.Sprintf("%d", pageSize))
		return "/api/games?" + qp.Encode()
	}

	links := Links{"self": {Href: pageURL(page)}}

	maxPage := (total + pageSize - 1) / pageSize
	if maxPage < 1 {
		maxPage = 1
	}
	if page < maxPage {
		links["next"] = Link{Href: pageURL(page + 1)}
	}
	if page > 1 {
		links["prev"] = Link{Href: pageURL(page - 1)}
	}
	if canCreate {
		links["create"] = Link{Href: "/api/games", Method: "POST"}
	}
	return links
}

// OfferLinks returns the links for a trade offer. The decide link is only
// offered while the viewer may still act on the offer.
func OfferLinks(offerID uint, canDecide bool) Links {
	links := Links{
		"self":     {Href: fmt.Sprintf("/api/offers/%d", offerID)},
		"incoming": {Href: "/api/offers/incoming"},
		"outgoing": {Href: "/api/offers/outgoing"},
		"create":   {Href: "/api/offers", Method: "POST"},
	}
	if canDecide {
		links["decide"] = Link{Href: fmt.Sprintf("/api/offers/%d/decision", offerID), Method: "POST"}
	}
	return links
}

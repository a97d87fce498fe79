package hateoas

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLinks(t *testing.T) {
	t.Run("Viewer is another user", func(t *testing.T) {
		links := UserLinks(7, false)

		assert.Equal(t, "/api/users/7", links["self"].Href)
		assert.Equal(t, "/api/games?ownerId=7", links["games"].Href)
		assert.Equal(t, "/api/games", links["search_games"].Href)
		assert.NotContains(t, links, "update")
		assert.NotContains(t, links, "create_game")
	})

	t.Run("Viewer is the user", func(t *testing.T) {
		links := UserLinks(7, true)

		assert.Equal(t, Link{Href: "/api/users/7", Method: "PUT"}, links["update"])
		assert.Equal(t, Link{Href: "/api/games", Method: "POST"}, links["create_game"])
	})
}

func TestGameLinks(t *testing.T) {
	t.Run("Non-owner", func(t *testing.T) {
		links := GameLinks(3, 9, false)

		assert.Equal(t, "/api/games/3", links["self"].Href)
		assert.Equal(t, "/api/users/9", links["owner"].Href)
		assert.Equal(t, "/api/games", links["collection"].Href)
		assert.NotContains(t, links, "update")
		assert.NotContains(t, links, "delete")
	})

	t.Run("Owner", func(t *testing.T) {
		links := GameLinks(3, 9, true)

		assert.Equal(t, Link{Href: "/api/games/3", Method: "PUT"}, links["update"])
		assert.Equal(t, Link{Href: "/api/games/3", Method: "DELETE"}, links["delete"])
	})
}

func TestGamesCollectionLinks_Paging(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int
		wantNext bool
		wantPrev bool
	}{
		{"Single page", 1, 20, 5, false, false},
		{"First of many", 1, 20, 45, true, false},
		{"Middle page", 2, 20, 45, true, true},
		{"Last page", 3, 20, 45, false, true},
		{"Exact page boundary", 2, 20, 40, false, true},
		{"Empty result set", 1, 20, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := GamesCollectionLinks(tt.page, tt.pageSize, tt.total, url.Values{}, false)

			_, next := links["next"]
			_, prev := links["prev"]
			assert.Equal(t, tt.wantNext, next, "next link presence")
			assert.Equal(t, tt.wantPrev, prev, "prev link presence")
			assert.Contains(t, links, "self")
		})
	}
}

func TestGamesCollectionLinks_PreservesFilters(t *testing.T) {
	params := url.Values{}
	params.Set("publisher", "Nintendo")
	params.Set("yearMin", "1990")

	links := GamesCollectionLinks(2, 10, 45, params, true)

	next, err := url.Parse(links["next"].Href)
	assert.NoError(t, err)
	q := next.Query()
	assert.Equal(t, "Nintendo", q.Get("publisher"))
	assert.Equal(t, "1990", q.Get("yearMin"))
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "10", q.Get("pageSize"))

	prev, err := url.Parse(links["prev"].Href)
	assert.NoError(t, err)
	assert.Equal(t, "1", prev.Query().Get("page"))

	assert.Equal(t, Link{Href: "/api/games", Method: "POST"}, links["create"])
}

func TestOfferLinks(t *testing.T) {
	t.Run("Cannot decide", func(t *testing.T) {
		links := OfferLinks(12, false)

		assert.Equal(t, "/api/offers/12", links["self"].Href)
		assert.Equal(t, "/api/offers/incoming", links["incoming"].Href)
		assert.Equal(t, "/api/offers/outgoing", links["outgoing"].Href)
		assert.Equal(t, Link{Href: "/api/offers", Method: "POST"}, links["create"])
		assert.NotContains(t, links, "decide")
	})

	t.Run("Can decide", func(t *testing.T) {
		links := OfferLinks(12, true)

		assert.Equal(t, Link{Href: "/api/offers/12/decision", Method: "POST"}, links["decide"])
	})
}

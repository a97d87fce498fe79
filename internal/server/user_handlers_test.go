package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroexchange/internal/models"
)

func TestRegisterUser(t *testing.T) {
	_, app := newTestApp(t)

	payload := map[string]any{
		"name":           "Alice",
		"email":          "Alice@Example.com",
		"password":       "correct-horse1",
		"street_address": "1 Retro Lane",
	}

	t.Run("Successful registration", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/api/users", "", payload)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/api/users/1", resp.Header.Get("Location"))
		assert.Equal(t, "alice@example.com", body["email"], "email is stored lowercase")
		assert.Nil(t, body["password"], "password never appears in responses")
		assert.Nil(t, body["password_hash"])

		l := links(t, body)
		assert.Contains(t, l, "self")
		assert.Contains(t, l, "update", "registrant views their own resource")
		assert.Contains(t, l, "create_game")
	})

	t.Run("Duplicate email conflicts case-insensitively", func(t *testing.T) {
		dup := map[string]any{
			"name":           "Alice Again",
			"email":          "ALICE@EXAMPLE.COM",
			"password":       "different-pass1",
			"street_address": "2 Retro Lane",
		}
		resp, body := doJSON(t, app, "POST", "/api/users", "", dup)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "EMAIL_IN_USE", errorCode(t, body))
	})

	t.Run("Validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			payload map[string]any
		}{
			{"Missing name", map[string]any{"email": "b@x.com", "password": "longenough1", "street_address": "s"}},
			{"Bad email", map[string]any{"name": "B", "email": "not-an-email", "password": "longenough1", "street_address": "s"}},
			{"Short password", map[string]any{"name": "B", "email": "b@x.com", "password": "short", "street_address": "s"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, body := doJSON(t, app, "POST", "/api/users", "", tt.payload)

				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
				assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))

				envelope := body["error"].(map[string]any)
				details, ok := envelope["details"].(map[string]any)
				require.True(t, ok)
				assert.NotEmpty(t, details, "field-level details are reported")
			})
		}
	})
}

func TestGetUser(t *testing.T) {
	srv, app := newTestApp(t)
	alice, aliceToken := createUser(t, srv, "Alice", "alice@example.com", "correct-horse1")
	_, bobToken := createUser(t, srv, "Bob", "bob@example.com", "staple-battery1")

	t.Run("Own profile carries mutation links", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/api/users/1", aliceToken, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		l := links(t, body)
		assert.Contains(t, l, "update")
		assert.Contains(t, l, "create_game")
	})

	t.Run("Someone else's profile does not", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/api/users/1", bobToken, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, alice.Name, body["name"])
		l := links(t, body)
		assert.NotContains(t, l, "update")
		assert.NotContains(t, l, "create_game")
		assert.Contains(t, l, "games")
	})

	t.Run("Unknown user", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/api/users/999", aliceToken, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", errorCode(t, body))
	})
}

func TestUpdateUser(t *testing.T) {
	srv, app := newTestApp(t)
	alice, aliceToken := createUser(t, srv, "Alice", "alice@example.com", "correct-horse1")
	_, bobToken := createUser(t, srv, "Bob", "bob@example.com", "staple-battery1")

	t.Run("Partial update leaves absent fields alone", func(t *testing.T) {
		resp, body := doJSON(t, app, "PUT", "/api/users/1", aliceToken, map[string]any{
			"street_address": "99 New Street",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "99 New Street", body["street_address"])
		assert.Equal(t, "Alice", body["name"], "name was not sent and must not change")

		var stored models.User
		require.NoError(t, srv.db.First(&stored, alice.ID).Error)
		assert.Equal(t, "99 New Street", stored.StreetAddress)
		assert.Equal(t, "Alice", stored.Name)
	})

	t.Run("Updating someone else is forbidden", func(t *testing.T) {
		resp, body := doJSON(t, app, "PUT", "/api/users/1", bobToken, map[string]any{
			"name": "Mallory",
		})

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, body))
	})
}

func TestDeleteUserCascades(t *testing.T) {
	srv, app := newTestApp(t)
	alice, aliceToken := createUser(t, srv, "Alice", "alice@example.com", "correct-horse1")
	bob, bobToken := createUser(t, srv, "Bob", "bob@example.com", "staple-battery1")

	g1 := createGame(t, srv, alice.ID, "Super Metroid")
	g2 := createGame(t, srv, bob.ID, "Chrono Trigger")

	// Bob offers his game for Alice's.
	resp, body := doJSON(t, app, "POST", "/api/offers", bobToken, map[string]any{
		"requested_game_id": g1.ID,
		"offered_game_id":   g2.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)

	t.Run("Deleting another account is forbidden", func(t *testing.T) {
		resp, body := doJSON(t, app, "DELETE", "/api/users/1", bobToken, nil)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, body))
	})

	t.Run("Deleting own account removes games and offers", func(t *testing.T) {
		resp, _ := doJSON(t, app, "DELETE", "/api/users/1", aliceToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		var userCount, gameCount, offerCount int64
		srv.db.Model(&models.User{}).Where("id = ?", alice.ID).Count(&userCount)
		srv.db.Model(&models.Game{}).Where("id = ?", g1.ID).Count(&gameCount)
		srv.db.Model(&models.TradeOffer{}).Count(&offerCount)

		assert.Zero(t, userCount, "user row removed")
		assert.Zero(t, gameCount, "owned game removed")
		assert.Zero(t, offerCount, "offer referencing the game removed")

		var bobGames int64
		srv.db.Model(&models.Game{}).Where("owner_id = ?", bob.ID).Count(&bobGames)
		assert.Equal(t, int64(1), bobGames, "other users' games survive")
	})
}

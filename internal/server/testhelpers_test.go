package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retroexchange/internal/config"
	"retroexchange/internal/database"
	"retroexchange/internal/models"
)

// setupTestDB creates an isolated in-memory SQLite database for one test.
// The shared-cache DSN is keyed by test name so gorm's connection pool sees
// a single database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// newTestApp wires a server around an in-memory database and returns it with
// a routed Fiber app.
func newTestApp(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cfg := &config.Config{
		JWTSecret:       "test-secret-key",
		TokenTTLMinutes: 60,
		Port:            "0",
		Env:             "test",
	}
	srv := NewServerWithDeps(cfg, setupTestDB(t), nil)
	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

// createUser inserts a user directly and returns it with a valid token.
func createUser(t *testing.T, srv *Server, name, email, password string) (*models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Name:          name,
		Email:         strings.ToLower(email),
		PasswordHash:  string(hashed),
		StreetAddress: "1 Test Street",
	}
	require.NoError(t, srv.db.Create(user).Error)

	token, err := srv.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// createGame inserts a game directly.
func createGame(t *testing.T, srv *Server, ownerID uint, name string) *models.Game {
	t.Helper()
	game := &models.Game{
		OwnerID:       ownerID,
		Name:          name,
		Publisher:     "Test Publisher",
		YearPublished: 1991,
		System:        "SNES",
		Condition:     models.ConditionGood,
	}
	require.NoError(t, srv.db.Create(game).Error)
	return game
}

// doJSON performs a request against the app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

// errorCode digs the machine-readable code out of an error envelope.
func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok, "response is not an error envelope: %v", body)
	code, _ := envelope["code"].(string)
	return code
}

// links extracts the _links map from a representation.
func links(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	l, ok := body["_links"].(map[string]any)
	require.True(t, ok, "response has no _links: %v", body)
	return l
}

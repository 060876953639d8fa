package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "8080",
		SessionSecret: "test-session-secret",
		Env:           "test",
	}
}

// setupTestApp creates a fresh app wired to an in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	srv := NewServerWithDB(testConfig(), db)
	return srv.NewApp(), db
}

func getPage(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// followRedirect issues a GET to the redirect target, carrying the
// session cookie so flash messages survive the hop.
func followRedirect(t *testing.T, app *fiber.App, resp *http.Response) *http.Response {
	t.Helper()

	location := resp.Header.Get("Location")
	require.NotEmpty(t, location, "expected a redirect response")

	req := httptest.NewRequest(http.MethodGet, location, nil)
	for _, cookie := range resp.Cookies() {
		req.AddCookie(cookie)
	}
	next, err := app.Test(req, -1)
	require.NoError(t, err)
	return next
}

func userPath(user *models.User) string { return fmt.Sprintf("/users/%d", user.ID) }
func postPath(post *models.Post) string { return fmt.Sprintf("/posts/%d", post.ID) }
func tagPath(tag *models.Tag) string { return fmt.Sprintf("/tags/%d", tag.ID) }

func createTestUser(t *testing.T, db *gorm.DB, first, last string) *models.User {
	t.Helper()

	user := &models.User{FirstName: first, LastName: last, ImageURL: models.DefaultProfileImage}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, user *models.User, title, content string) *models.Post {
	t.Helper()

	post := &models.Post{Title: title, Content: content, UserID: user.ID}
	require.NoError(t, db.Create(post).Error)
	return post
}

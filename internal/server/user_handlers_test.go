package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"blogly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "Alice", "Anderson")
	createTestUser(t, db, "Bob", "Brown")

	resp := getPage(t, app, "/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Alice Anderson")
	assert.Contains(t, body, "Bob Brown")
}

func TestCreateUser(t *testing.T) {
	app, db := setupTestApp(t)

	form := url.Values{}
	form.Set("first_name", "John")
	form.Set("last_name", "Doe")
	resp := postForm(t, app, "/users/new", form)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/users", resp.Header.Get("Location"))

	listing := followRedirect(t, app, resp)
	body := readBody(t, listing)
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "User &#39;John Doe&#39; added.")

	var user models.User
	require.NoError(t, db.Where("first_name = ?", "John").First(&user).Error)
	assert.Equal(t, models.DefaultProfileImage, user.ImageURL, "blank image should fall back to the default")
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	app, db := setupTestApp(t)

	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{
			name:    "missing first name",
			form:    url.Values{"last_name": {"Doe"}},
			wantMsg: "First name is required",
		},
		{
			name:    "missing last name",
			form:    url.Values{"first_name": {"John"}},
			wantMsg: "Last name is required",
		},
		{
			name:    "blank fields",
			form:    url.Values{"first_name": {"   "}, "last_name": {"   "}},
			wantMsg: "First name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postForm(t, app, "/users/new", tt.form)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), tt.wantMsg)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "no users should be created on validation failure")
}

func TestShowUser(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "Test", "User")
	createTestPost(t, db, user, "First Post", "Hello there.")

	resp := getPage(t, app, userPath(user))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Test User")
	assert.Contains(t, body, "First Post")
}

func TestShowUser_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, path := range []string{"/users/999", "/users/abc", "/users/0"} {
		resp := getPage(t, app, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "GET %s", path)
	}
}

func TestUpdateUser(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "Old", "Name")

	form := url.Values{}
	form.Set("first_name", "New")
	form.Set("last_name", "Name")
	form.Set("image_url", "https://example.com/avatar.png")
	resp := postForm(t, app, userPath(user)+"/edit", form)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, userPath(user), resp.Header.Get("Location"))

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "https://example.com/avatar.png", updated.ImageURL)
}

func TestDeleteUser_CascadesPosts(t *testing.T) {
	app, db := setupTestApp(t)
	user := createTestUser(t, db, "Doomed", "User")
	post := createTestPost(t, db, user, "Orphan Candidate", "Soon gone.")

	tag := models.Tag{Name: "golang"}
	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, db.Model(&tag).Association("Posts").Append(post))

	resp := postForm(t, app, userPath(user)+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/users", resp.Header.Get("Location"))

	var users, posts, joins int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Table("posts_tags").Count(&joins).Error)
	assert.Zero(t, users)
	assert.Zero(t, posts, "user deletion should remove the user's posts")
	assert.Zero(t, joins, "user deletion should remove orphaned tag links")

	gone := getPage(t, app, postPath(post))
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestFlashMessageShownOnce(t *testing.T) {
	app, _ := setupTestApp(t)

	form := url.Values{}
	form.Set("first_name", "Flash")
	form.Set("last_name", "Tester")
	resp := postForm(t, app, "/users/new", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	first := followRedirect(t, app, resp)
	assert.Contains(t, readBody(t, first), "User &#39;Flash Tester&#39; added.")

	// Replaying the same session cookie must not show the flash again.
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	for _, cookie := range resp.Cookies() {
		req.AddCookie(cookie)
	}
	second, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.NotContains(t, readBody(t, second), "added.")
}

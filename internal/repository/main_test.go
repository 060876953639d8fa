package repository

import (
	"testing"
	"time"

	"blogly/internal/database"
	"blogly/internal/models"

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

func seedUser(t *testing.T, db *gorm.DB, first, last string) *models.User {
	t.Helper()

	user := &models.User{FirstName: first, LastName: last, ImageURL: models.DefaultProfileImage}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, user *models.User, title string) *models.Post {
	t.Helper()

	post := &models.Post{Title: title, Content: "content for " + title, UserID: user.ID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedTag(t *testing.T, db *gorm.DB, name string, posts ...*models.Post) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error)
	for _, post := range posts {
		require.NoError(t, db.Model(tag).Association("Posts").Append(post))
	}
	return tag
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

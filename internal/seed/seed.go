// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"blogly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumTags     int
	ShouldClean bool
}

var tagNames = []string{
	"go", "web", "databases", "testing", "devops", "frontend", "backend",
	"career", "opinion", "tutorial", "review", "announcement",
}

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes every Blogly record, association rows first.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM posts_tags",
		"DELETE FROM posts",
		"DELETE FROM tags",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed on %q: %w", stmt, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n users with fake names and avatars.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts spread across the given users, with creation
// timestamps scattered over the last 90 days.
func (s *Seeder) SeedPosts(users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot seed posts without users")
	}
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rand.Intn(len(users))]
		backdate := time.Duration(s.rand.Intn(90*24)) * time.Hour
		posts = append(posts, models.Post{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:    owner.ID,
			CreatedAt: time.Now().UTC().Add(-backdate),
		})
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// SeedTags creates up to n tags and attaches each to a random subset of
// the given posts.
func (s *Seeder) SeedTags(posts []models.Post, n int) ([]models.Tag, error) {
	if n > len(tagNames) {
		n = len(tagNames)
	}
	tags := make([]models.Tag, 0, n)
	for i := 0; i < n; i++ {
		tag := models.Tag{Name: tagNames[i]}
		if err := s.db.Create(&tag).Error; err != nil {
			return nil, fmt.Errorf("seeding tag %q: %w", tag.Name, err)
		}
		if len(posts) > 0 {
			subset := s.randomPosts(posts)
			if len(subset) > 0 {
				if err := s.db.Model(&tag).Association("Posts").Append(subset); err != nil {
					return nil, fmt.Errorf("tagging posts with %q: %w", tag.Name, err)
				}
			}
		}
		tags = append(tags, tag)
	}
	log.Printf("Seeded %d tags", len(tags))
	return tags, nil
}

// Run executes a full seeding pass according to opts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return err
	}
	_, err = s.SeedTags(posts, opts.NumTags)
	return err
}

// randomPosts picks a random subset (roughly a quarter) of posts.
func (s *Seeder) randomPosts(posts []models.Post) []models.Post {
	subset := make([]models.Post, 0)
	for _, post := range posts {
		if s.rand.Intn(4) == 0 {
			subset = append(subset, post)
		}
	}
	return subset
}

package repository

import (
	"context"
	"errors"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, tag *models.Tag, posts []models.Post) error
	Update(ctx context.Context, tag *models.Tag, posts []models.Post) error
	Delete(ctx context.Context, id uint) error
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Preload("Posts").Preload("Posts.User").First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil for not found, not an error
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// Create inserts the tag together with its initial post associations.
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag, posts []models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tag).Error; err != nil {
			return err
		}
		if len(posts) == 0 {
			return nil
		}
		return tx.Model(tag).Association("Posts").Append(posts)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update renames the tag and replaces its post set with exactly the given
// posts. Posts not in the set lose the association.
func (r *tagRepository) Update(ctx context.Context, tag *models.Tag, posts []models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(tag).Select("name").Updates(map[string]interface{}{"name": tag.Name}).Error; err != nil {
			return err
		}
		if len(posts) == 0 {
			return tx.Model(tag).Association("Posts").Clear()
		}
		return tx.Model(tag).Association("Posts").Replace(posts)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the tag and its association rows; posts survive.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag := models.Tag{ID: id}
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

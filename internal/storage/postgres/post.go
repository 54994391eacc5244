package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var existing models.Post
	err = s.db.Where("title = ?", input.Title).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %q", post.ErrDuplicateTitle, input.Title)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	p := &models.Post{
		Title:        input.Title,
		Subtitle:     input.Subtitle,
		Date:         time.Now().Format(post.DateFormat),
		Body:         input.Body,
		ImageURL:     input.ImageURL,
		UserID:       userID,
		LastEditorID: userID,
	}

	err = s.db.Create(p).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", post.ErrDuplicateTitle, input.Title)
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return p, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var p models.Post
	err = s.db.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %d", post.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	if input.Title != p.Title {
		var other models.Post
		err = s.db.Where("title = ? AND id <> ?", input.Title, id).First(&other).Error
		if err == nil {
			return nil, fmt.Errorf("%w: %q", post.ErrDuplicateTitle, input.Title)
		}
		if !gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
		}
	}

	p.Title = input.Title
	p.Subtitle = input.Subtitle
	p.Body = input.Body
	p.ImageURL = input.ImageURL
	// автор (UserID) и дата создания не перезаписываются
	p.LastEditorID = userID

	err = s.db.Save(&p).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", post.ErrDuplicateTitle, input.Title)
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return &p, nil
}

func (s *PostPostgresStorage) DeletePostById(ctx context.Context, id uint) error {
	_, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var p models.Post
	err = s.db.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("%w: id %d", post.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	// Unscoped - физическое удаление: мягко удаленная строка оставила бы
	// заголовок занятым в unique-индексе
	err = s.db.Unscoped().Delete(&models.Post{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return nil
}

func (s *PostPostgresStorage) GetPostById(id uint) (*models.Post, error) {
	var p models.Post
	err := s.db.First(&p, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %d", post.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return &p, nil
}

func (s *PostPostgresStorage) GetAllPosts() ([]*models.Post, error) {
	var posts []models.Post
	err := s.db.Order("id asc").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	var results []*models.Post
	for i := range posts {
		results = append(results, &posts[i])
	}

	return results, nil
}

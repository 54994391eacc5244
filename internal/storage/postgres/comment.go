package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/internal/subscription"
	"github.com/VitaminP8/bloggery/models"
)

type CommentPostgresStorage struct {
	db      *gorm.DB
	manager subscription.Manager
}

func NewCommentPostgresStorage(db *gorm.DB, manager subscription.Manager) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db, manager: manager}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID uint, parentID *uint, text string) (*models.Comment, error) {
	if len(text) == 0 || len(text) > comment.MaxTextLength {
		return nil, comment.ErrInvalidText
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var p models.Post
	err = s.db.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %d", post.ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	if parentID != nil {
		// родительский комментарий должен существовать и принадлежать тому же посту
		var parent models.Comment
		err = s.db.First(&parent, *parentID).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: id %d", comment.ErrParentNotFound, *parentID)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
		}
		if parent.PostID != postID {
			return nil, comment.ErrParentMismatch
		}
	}

	c := &models.Comment{
		Text:     text,
		UserID:   userID,
		PostID:   postID,
		ParentID: parentID,
	}

	err = s.db.Create(c).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	if s.manager != nil {
		s.manager.Publish(postID, c)
	}

	return c, nil
}

func (s *CommentPostgresStorage) GetComments(postID uint) ([]*models.Comment, error) {
	var p models.Post
	err := s.db.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %d", post.ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	var comments []models.Comment
	err = s.db.Where("post_id = ?", postID).Order("id asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	var results []*models.Comment
	for i := range comments {
		results = append(results, &comments[i])
	}

	return results, nil
}

func (s *CommentPostgresStorage) DeleteByPostId(postID uint) error {
	err := s.db.Unscoped().Where("post_id = ?", postID).Delete(&models.Comment{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/subscription"
	"github.com/VitaminP8/bloggery/models"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*models.Comment
	nextId      uint
	postStorage post.PostStorage // Хранилище постов (внедрение зависимости (DI))
	manager     subscription.Manager
}

func NewCommentMemoryStorage(postStore post.PostStorage, manager subscription.Manager) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[uint]*models.Comment),
		nextId:      1,
		postStorage: postStore,
		manager:     manager,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID uint, parentID *uint, text string) (*models.Comment, error) {
	if len(text) == 0 || len(text) > comment.MaxTextLength {
		return nil, comment.ErrInvalidText
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		// проверяем что родительский комментарий существует и принадлежит тому же посту
		parent, ok := s.comments[*parentID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", comment.ErrParentNotFound, *parentID)
		}
		if parent.PostID != postID {
			return nil, comment.ErrParentMismatch
		}
	}

	c := &models.Comment{
		Model:    gorm.Model{ID: s.nextId, CreatedAt: time.Now()},
		Text:     text,
		UserID:   userID,
		PostID:   postID,
		ParentID: parentID,
	}
	s.nextId++

	s.comments[c.ID] = c

	if s.manager != nil {
		s.manager.Publish(postID, c)
	}

	return c, nil
}

func (s *CommentMemoryStorage) GetComments(postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, err
	}

	var result []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			result = append(result, c)
		}
	}

	// порядок создания = порядок возрастания id
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *CommentMemoryStorage) DeleteByPostId(postID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}

	return nil
}

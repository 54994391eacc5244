package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/models"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	titles map[string]uint // title -> postID, уникальность заголовков
	nextId uint
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*models.Post),
		titles: make(map[string]uint),
		nextId: 1,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, input post.Input) (*models.Post, error) {
	// Контекст — это read-only структура (при каждом запросе он не обновляется, а создается заново)(поэтому над мьютексом)
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.titles[input.Title]; taken {
		return nil, fmt.Errorf("%w: %q", post.ErrDuplicateTitle, input.Title)
	}

	now := time.Now()
	p := &models.Post{
		Model:        gorm.Model{ID: s.nextId, CreatedAt: now},
		Title:        input.Title,
		Subtitle:     input.Subtitle,
		Date:         now.Format(post.DateFormat),
		Body:         input.Body,
		ImageURL:     input.ImageURL,
		UserID:       userID,
		LastEditorID: userID,
	}
	s.nextId++

	s.posts[p.ID] = p
	s.titles[p.Title] = p.ID

	return p, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id uint, input post.Input) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("%w: id %d", post.ErrNotFound, id)
	}

	if ownerID, taken := s.titles[input.Title]; taken && ownerID != id {
		return nil, fmt.Errorf("%w: %q", post.ErrDuplicateTitle, input.Title)
	}

	delete(s.titles, p.Title)
	p.Title = input.Title
	p.Subtitle = input.Subtitle
	p.Body = input.Body
	p.ImageURL = input.ImageURL
	// автор и дата создания не трогаются, фиксируем только последнего редактора
	p.LastEditorID = userID
	s.titles[p.Title] = id

	return p, nil
}

func (s *PostMemoryStorage) DeletePostById(ctx context.Context, id uint) error {
	_, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return fmt.Errorf("%w: id %d", post.ErrNotFound, id)
	}

	delete(s.titles, p.Title)
	delete(s.posts, id)
	return nil
}

func (s *PostMemoryStorage) GetPostById(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("%w: id %d", post.ErrNotFound, id)
	}

	return p, nil
}

func (s *PostMemoryStorage) GetAllPosts() ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*models.Post
	for _, p := range s.posts {
		posts = append(posts, p)
	}

	// стабильный порядок - по возрастанию id
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})

	return posts, nil
}

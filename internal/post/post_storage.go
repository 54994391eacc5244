package post

import (
	"context"
	"errors"

	"github.com/VitaminP8/bloggery/models"
)

var (
	ErrNotFound       = errors.New("post not found")
	ErrDuplicateTitle = errors.New("post title already exists")
)

// DateFormat - длинный календарный формат даты создания поста ("April 05, 2024")
const DateFormat = "January 02, 2006"

// Input - редактируемые поля поста
type Input struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type PostStorage interface {
	// CreatePost создает пост от имени пользователя из контекста,
	// проставляя дату создания на момент вызова
	CreatePost(ctx context.Context, input Input) (*models.Post, error)
	// UpdatePost перезаписывает редактируемые поля. Автор и дата создания
	// не меняются, LastEditorID становится пользователем из контекста
	UpdatePost(ctx context.Context, id uint, input Input) (*models.Post, error)
	DeletePostById(ctx context.Context, id uint) error
	GetPostById(id uint) (*models.Post, error)
	// GetAllPosts возвращает посты по возрастанию id
	GetAllPosts() ([]*models.Post, error)
}

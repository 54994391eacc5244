package comment

import (
	"context"
	"errors"

	"github.com/VitaminP8/bloggery/models"
)

var (
	ErrParentNotFound = errors.New("parent comment not found")
	ErrParentMismatch = errors.New("parent comment belongs to a different post")
	ErrInvalidText    = errors.New("comment text is empty or too long")
)

// Максимальная длина текста комментария
const MaxTextLength = 2000

type CommentStorage interface {
	// CreateComment создает комментарий от имени пользователя из контекста.
	// parentID задается для вложенного ответа и должен указывать на
	// комментарий того же поста
	CreateComment(ctx context.Context, postID uint, parentID *uint, text string) (*models.Comment, error)
	// GetComments возвращает все комментарии поста в порядке создания
	GetComments(postID uint) ([]*models.Comment, error)
	// DeleteByPostId удаляет все комментарии поста (каскад при удалении поста)
	DeleteByPostId(postID uint) error
}

package mocks

import (
	"fmt"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

// UnavailableUserStorage имитирует потерю соединения с хранилищем
type UnavailableUserStorage struct{}

func NewUnavailableUserStorage() *UnavailableUserStorage {
	return &UnavailableUserStorage{}
}

func (s *UnavailableUserStorage) Register(name, email, password string) (*models.User, error) {
	return nil, fmt.Errorf("%w: connection refused", storage.ErrUnavailable)
}

func (s *UnavailableUserStorage) Authenticate(email, password string) (uint, error) {
	return 0, fmt.Errorf("%w: connection refused", storage.ErrUnavailable)
}

func (s *UnavailableUserStorage) FindByEmail(email string) (*models.User, error) {
	return nil, fmt.Errorf("%w: connection refused", storage.ErrUnavailable)
}

func (s *UnavailableUserStorage) FindById(id uint) (*models.User, error) {
	return nil, fmt.Errorf("%w: connection refused", storage.ErrUnavailable)
}

var _ user.UserStorage = (*UnavailableUserStorage)(nil)

package user

import (
	"errors"

	"github.com/VitaminP8/bloggery/models"
)

var (
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrUnknownEmail   = errors.New("email does not exist")
	ErrUnknownUser    = errors.New("user not found")
	ErrWrongPassword  = errors.New("wrong password")
)

type UserStorage interface {
	// Register создает пользователя. Первый зарегистрированный в пустом
	// хранилище получает роль администратора. Сессию не открывает
	Register(name, email, password string) (*models.User, error)
	// Authenticate проверяет пару email/пароль и возвращает userID
	Authenticate(email, password string) (uint, error)
	// FindByEmail ищет пользователя по точному совпадению email
	FindByEmail(email string) (*models.User, error)
	FindById(id uint) (*models.User, error)
}

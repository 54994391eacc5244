package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/bloggery/internal/password"
	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) Register(name, email, plaintext string) (*models.User, error) {
	// проверка - существует ли пользователь с таким email
	var existUser models.User
	err := s.db.Where("email = ?", email).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", user.ErrDuplicateEmail, email)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	// первый зарегистрированный получает роль администратора
	role := models.RoleMember
	var admins int
	err = s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	if admins == 0 {
		role = models.RoleAdmin
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	err = s.db.Create(u).Error
	if err != nil {
		if isUniqueViolation(err) {
			// конкурентную регистрацию с тем же email разрешает unique-индекс
			return nil, fmt.Errorf("%w: %s", user.ErrDuplicateEmail, email)
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return u, nil
}

func (s *UserPostgresStorage) Authenticate(email, plaintext string) (uint, error) {
	var u models.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, fmt.Errorf("%w: %s", user.ErrUnknownEmail, email)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	ok, err := password.Verify(plaintext, u.PasswordHash)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, user.ErrWrongPassword
	}

	return u.ID, nil
}

func (s *UserPostgresStorage) FindByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: %s", user.ErrUnknownEmail, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) FindById(id uint) (*models.User, error) {
	var u models.User
	err := s.db.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %d", user.ErrUnknownUser, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return &u, nil
}
